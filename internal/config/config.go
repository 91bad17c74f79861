// Package config provides YAML-based game configuration loading and
// difficulty management for the 2048 front end.
package config

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board      BoardConfig      `yaml:"board"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Merge      MergeConfig      `yaml:"merge"`
	Campaign   CampaignConfig   `yaml:"campaign"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board shape and the opening position.
type BoardConfig struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	StartTiles int `yaml:"start_tiles"`
}

// SpawnConfig defines which tiles appear after a move and how often.
// Values and Weights are parallel slices.
type SpawnConfig struct {
	Values  []int     `yaml:"values"`
	Weights []float64 `yaml:"weights"`
}

// MergeConfig limits merging. MaxTile 0 means no cap.
type MergeConfig struct {
	MaxTile int `yaml:"max_tile"`
}

// CampaignConfig lists the campaign levels in play order.
type CampaignConfig struct {
	Levels          []LevelConfig `yaml:"levels"`
	LevelClearTicks int           `yaml:"level_clear_ticks"` // pause shown after a target is reached
}

// LevelConfig defines one campaign level.
type LevelConfig struct {
	Name   string  `yaml:"name"`
	Target int     `yaml:"target"`
	Spawn4 float64 `yaml:"spawn4"` // probability of a 4 instead of a 2
}

// DifficultyConfig defines how endless mode gets harder as the score grows.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	Spawn4Increase float64 `yaml:"spawn4_increase"` // added to the 4-probability at max difficulty
	MaxSpawn4      float64 `yaml:"max_spawn4"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
