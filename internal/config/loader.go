package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// ErrInvalidConfig is returned when a loaded config cannot drive a game.
var ErrInvalidConfig = errors.New("config: invalid")

// LoadT2048 loads 2048 configuration.
// Search order: customPath -> ~/.arcade/configs/2048.yaml -> ./configs/2048.yaml -> embedded default
func LoadT2048(customPath string) (T2048Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return T2048Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseT2048(data)
		if err != nil {
			return T2048Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("2048.yaml"), filepath.Join("configs", "2048.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseT2048(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseT2048(defaultT2048YAML)
	if err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseT2048 decodes data over the hard-coded defaults so partial files
// only override what they name, then validates the result.
func parseT2048(data []byte) (T2048Config, error) {
	cfg := DefaultT2048Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return T2048Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return T2048Config{}, err
	}
	return cfg, nil
}

// Validate checks that the config describes a playable game.
func (c T2048Config) Validate() error {
	if c.Board.Rows < 1 || c.Board.Cols < 1 || c.Board.Rows > engine.MaxCells/c.Board.Cols {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Rows, c.Board.Cols)
	}
	if c.Board.StartTiles < 0 || c.Board.StartTiles > c.Board.Rows*c.Board.Cols {
		return fmt.Errorf("%w: start_tiles %d", ErrInvalidConfig, c.Board.StartTiles)
	}
	if len(c.Spawn.Values) == 0 || len(c.Spawn.Values) != len(c.Spawn.Weights) {
		return fmt.Errorf("%w: %d spawn values, %d weights", ErrInvalidConfig, len(c.Spawn.Values), len(c.Spawn.Weights))
	}
	total := 0.0
	for i, v := range c.Spawn.Values {
		if v <= 0 {
			return fmt.Errorf("%w: spawn value %d", ErrInvalidConfig, v)
		}
		if c.Spawn.Weights[i] < 0 {
			return fmt.Errorf("%w: spawn weight %v", ErrInvalidConfig, c.Spawn.Weights[i])
		}
		total += c.Spawn.Weights[i]
	}
	if total <= 0 {
		return fmt.Errorf("%w: spawn weights sum to zero", ErrInvalidConfig)
	}
	if c.Merge.MaxTile < 0 {
		return fmt.Errorf("%w: max_tile %d", ErrInvalidConfig, c.Merge.MaxTile)
	}
	for i, lvl := range c.Campaign.Levels {
		if lvl.Target <= 0 {
			return fmt.Errorf("%w: level %d target %d", ErrInvalidConfig, i+1, lvl.Target)
		}
		if lvl.Spawn4 < 0 || lvl.Spawn4 > 1 {
			return fmt.Errorf("%w: level %d spawn4 %v", ErrInvalidConfig, i+1, lvl.Spawn4)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the opening and spawn odds
	switch preset {
	case DifficultyEasy:
		cfg.Board.StartTiles = min(3, cfg.Board.Rows*cfg.Board.Cols)
		cfg.Spawn.Values = []int{2, 4}
		cfg.Spawn.Weights = []float64{0.95, 0.05}
	case DifficultyHard:
		cfg.Spawn.Values = []int{2, 4}
		cfg.Spawn.Weights = []float64{0.75, 0.25}
	}
}
