package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagResume     string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a board",
	Long: `Start playing the specified board. "2048" opens the mode selector
(campaign, endless variants, level select); the other IDs start directly.

Controls:
  Arrows/WASD  - Slide
  P            - Pause
  Ctrl+S       - Save (resume later with --resume or the menu)
  R            - Restart (after game over)
  Esc/B        - Back (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options (spawn odds of 4-tiles):
  easy   - More 2s, three starting tiles
  normal - Config defaults, odds rise with score in endless
  hard   - More 4s
  fixed  - No progression

Examples:
  arcade play 2048
  arcade play 2048_endless --difficulty hard
  arcade play 2048_3x3 --seed 7
  arcade play --resume 6f1c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom 2048 config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagResume, "resume", "", "ID of a saved game to resume")
}

// applyGameFlags passes --config and --difficulty to the 2048 package.
func applyGameFlags() {
	t2048.SetConfigPath(flagConfig)
	t2048.SetDifficultyPreset(flagDifficulty)
}

// selectVariant runs the mode selector for groups that have one and
// returns the concrete game ID, or "" when the player backed out.
func selectVariant(gameID string, cfg core.RuntimeConfig) (string, core.RuntimeConfig, error) {
	info, ok := registry.Lookup(gameID)
	if !ok || info.Group != "2048" || gameID != info.Group {
		return gameID, cfg, nil
	}

	selection, updatedCfg, err := tui.RunT2048ModeSelector(cfg)
	if err != nil {
		return "", cfg, err
	}
	// User pressed back or quit
	if selection == nil {
		return "", updatedCfg, nil
	}
	if selection.Level > 0 {
		t2048.SetStartLevel(selection.Level)
	}
	return selection.GameID, updatedCfg, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	applyGameFlags()
	cfg := runtimeConfig()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var resume *storage.SavedGame
	var gameID string
	switch {
	case flagResume != "":
		if store == nil {
			return fmt.Errorf("cannot resume without a database")
		}
		resume, err = store.LoadGame(flagResume)
		if err != nil {
			return err
		}
		gameID = resume.GameID

	case len(args) == 1:
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
		}
		gameID, cfg, err = selectVariant(gameID, cfg)
		if err != nil || gameID == "" {
			return err
		}

	default:
		return fmt.Errorf("name a game or pass --resume <id>")
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if err := tui.Run(game, store, cfg, resume); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
