// Package t2048 implements the 2048 puzzle game with campaign and endless
// modes on top of the sliding-tile engine.
package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
)

// Level defines a campaign level with a target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Target tile value to reach
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// levelsFrom numbers the configured campaign levels from 1.
func levelsFrom(cfg config.T2048Config) []Level {
	out := make([]Level, len(cfg.Campaign.Levels))
	for i, lc := range cfg.Campaign.Levels {
		out[i] = Level{ID: i + 1, Name: lc.Name, Target: lc.Target, Spawn4: lc.Spawn4}
	}
	return out
}

// Levels returns the campaign levels of the active configuration.
func Levels() []Level {
	return levelsFrom(loadConfig())
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels())
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	levels := Levels()
	if index < 0 || index >= len(levels) {
		return nil
	}
	return &levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	levels := Levels()
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of all levels.
func LevelTargets() []int {
	levels := Levels()
	targets := make([]int, len(levels))
	for i, lvl := range levels {
		targets[i] = lvl.Target
	}
	return targets
}
