// arcade is a terminal 2048: slide tiles, merge equal values, reach the target.
//
// Usage:
//
//	arcade list              - List available boards
//	arcade play <game>       - Play a board (2048, 2048_endless, 2048_5x5, 2048_3x3)
//	arcade menu              - Start menu to pick boards, saves and scores
//	arcade serve             - Start SSH (and optional websocket) server
//	arcade scores [game]     - Show high scores
//	arcade saves             - List or delete saved games
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.arcade/scores.db)
//	--player <name>  - Name recorded with scores and saves
//
// Defaults for --db, --player, --ssh and --ws can come from ARCADE_DB,
// ARCADE_PLAYER, ARCADE_SSH_ADDR and ARCADE_WS_ADDR, read from the
// environment or a .env file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	// Import games to register them
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagPlayer string
)

// envFlags maps flag names to the environment variables that supply
// their defaults. Flags set on the command line win.
var envFlags = map[string]string{
	"db":     "ARCADE_DB",
	"player": "ARCADE_PLAYER",
	"ssh":    "ARCADE_SSH_ADDR",
	"ws":     "ARCADE_WS_ADDR",
}

func main() {
	// A missing .env is fine; the real environment still applies
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "2048 in your terminal",
	Long: `Slide the board, merge equal tiles, and reach the target tile.

Available commands:
  list     - Show all boards
  play     - Play a board directly
  menu     - Interactive picker with saves and scores
  serve    - Start SSH server for remote play (plus websocket API with --ws)
  scores   - View high scores
  saves    - List or delete saved games

Examples:
  arcade list
  arcade play 2048
  arcade play 2048_5x5 --seed 42
  arcade menu
  arcade serve --ssh :2222 --ws :8080
  arcade scores 2048_endless`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyEnv(cmd)
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name for scores and saves")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
}

// applyEnv fills flags left at their defaults from the environment.
func applyEnv(cmd *cobra.Command) error {
	for name, env := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
	}
	return nil
}

// newLogger returns the CLI's structured logger.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// runtimeConfig builds the game config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Player = flagPlayer
	return cfg
}
