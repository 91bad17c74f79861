package config

import (
	_ "embed"
)

//go:embed defaults/2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the hard-coded 2048 configuration. It matches
// defaults/2048.yaml and is used when the embedded file cannot be parsed.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Rows:       4,
			Cols:       4,
			StartTiles: 2,
		},
		Spawn: SpawnConfig{
			Values:  []int{2, 4},
			Weights: []float64{0.9, 0.1},
		},
		Campaign: CampaignConfig{
			LevelClearTicks: 120, // 2 seconds at 60fps
			Levels: []LevelConfig{
				{Name: "Warm-up", Target: 128, Spawn4: 0.10},
				{Name: "Getting Started", Target: 256, Spawn4: 0.10},
				{Name: "Building Momentum", Target: 512, Spawn4: 0.10},
				{Name: "The Climb", Target: 1024, Spawn4: 0.10},
				{Name: "Classic 2048", Target: 2048, Spawn4: 0.10},
				{Name: "Beyond Limits", Target: 4096, Spawn4: 0.12},
				{Name: "Master Class", Target: 8192, Spawn4: 0.15},
				{Name: "Expert Challenge", Target: 8192, Spawn4: 0.18},
				{Name: "Grandmaster", Target: 8192, Spawn4: 0.20},
				{Name: "Ultimate Champion", Target: 8192, Spawn4: 0.25},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				Spawn4Increase: 0.15,
				MaxSpawn4:      0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "2048":
		return defaultT2048YAML
	default:
		return nil
	}
}
