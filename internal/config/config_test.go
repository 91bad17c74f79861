package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesEmbedded(t *testing.T) {
	embedded, err := parseT2048(GetDefaultYAML("2048"))
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	def := DefaultT2048Config()

	if embedded.Board != def.Board {
		t.Errorf("board = %+v, want %+v", embedded.Board, def.Board)
	}
	if len(embedded.Campaign.Levels) != len(def.Campaign.Levels) {
		t.Fatalf("levels = %d, want %d", len(embedded.Campaign.Levels), len(def.Campaign.Levels))
	}
	for i := range def.Campaign.Levels {
		if embedded.Campaign.Levels[i] != def.Campaign.Levels[i] {
			t.Errorf("level %d = %+v, want %+v", i+1, embedded.Campaign.Levels[i], def.Campaign.Levels[i])
		}
	}
	if embedded.Difficulty != def.Difficulty {
		t.Errorf("difficulty = %+v, want %+v", embedded.Difficulty, def.Difficulty)
	}
}

func TestGetDefaultYAMLUnknown(t *testing.T) {
	if GetDefaultYAML("tetris") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.yaml")
	data := []byte("board:\n  rows: 3\n  cols: 5\n  start_tiles: 1\nmerge:\n  max_tile: 1024\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048 failed: %v", err)
	}
	if cfg.Board.Rows != 3 || cfg.Board.Cols != 5 || cfg.Board.StartTiles != 1 {
		t.Errorf("board = %+v", cfg.Board)
	}
	if cfg.Merge.MaxTile != 1024 {
		t.Errorf("max_tile = %d, want 1024", cfg.Merge.MaxTile)
	}
	// Unnamed sections keep their defaults
	if len(cfg.Campaign.Levels) != 10 {
		t.Errorf("levels = %d, want 10", len(cfg.Campaign.Levels))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadT2048(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board:\n  rows: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadT2048(bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero rows: err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*T2048Config)
		ok     bool
	}{
		{"default", func(*T2048Config) {}, true},
		{"zero cols", func(c *T2048Config) { c.Board.Cols = 0 }, false},
		{"board above cell cap", func(c *T2048Config) { c.Board.Rows, c.Board.Cols = 300, 300 }, false},
		{"too many start tiles", func(c *T2048Config) { c.Board.StartTiles = 17 }, false},
		{"weights mismatch", func(c *T2048Config) { c.Spawn.Weights = []float64{1} }, false},
		{"zero spawn value", func(c *T2048Config) { c.Spawn.Values = []int{0, 4} }, false},
		{"negative weight", func(c *T2048Config) { c.Spawn.Weights = []float64{-1, 2} }, false},
		{"zero weights", func(c *T2048Config) { c.Spawn.Weights = []float64{0, 0} }, false},
		{"negative cap", func(c *T2048Config) { c.Merge.MaxTile = -2 }, false},
		{"bad target", func(c *T2048Config) { c.Campaign.Levels[0].Target = 0 }, false},
		{"bad spawn4", func(c *T2048Config) { c.Campaign.Levels[2].Spawn4 = 1.5 }, false},
		{"no levels", func(c *T2048Config) { c.Campaign.Levels = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultT2048Config()
	ApplyT2048Preset(&cfg, DifficultyEasy)
	if cfg.Board.StartTiles != 3 || cfg.Spawn.Weights[1] != 0.05 {
		t.Errorf("easy: start=%d weights=%v", cfg.Board.StartTiles, cfg.Spawn.Weights)
	}

	cfg = DefaultT2048Config()
	ApplyT2048Preset(&cfg, DifficultyHard)
	if cfg.Difficulty.InitialLevel != 0.7 || cfg.Spawn.Weights[1] != 0.25 {
		t.Errorf("hard: level=%v weights=%v", cfg.Difficulty.InitialLevel, cfg.Spawn.Weights)
	}

	cfg = DefaultT2048Config()
	ApplyT2048Preset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed should disable progression")
	}

	cfg = DefaultT2048Config()
	ApplyT2048Preset(&cfg, "")
	if cfg.Difficulty.InitialLevel != 0 || !cfg.Difficulty.Enabled {
		t.Error("empty preset should change nothing")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should be empty")
	}
}
