package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSavesAll   bool
	flagSavesLimit int
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games",
	Long: `List games saved with Ctrl+S, newest first. By default only the
current player's saves are shown.

Examples:
  arcade saves
  arcade saves --all
  arcade saves --player alice
  arcade saves rm 6f1c2b4e-...`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var savesRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete saved games",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSavesRm,
}

func init() {
	savesCmd.Flags().BoolVar(&flagSavesAll, "all", false, "Show every player's saves")
	savesCmd.Flags().IntVar(&flagSavesLimit, "limit", 20, "Number of saves to show")
	savesCmd.AddCommand(savesRmCmd)
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	player := flagPlayer
	if flagSavesAll {
		player = ""
	}
	saves, err := store.ListSaves(player, flagSavesLimit)
	if err != nil {
		return fmt.Errorf("listing saves: %w", err)
	}

	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	fmt.Printf("  %-36s  %-14s  %-10s  %-12s  %-8s  %s\n", "ID", "Board", "Score", "Player", "Size", "Saved")
	for _, s := range saves {
		player := s.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-36s  %-14s  %-10s  %-12s  %-8s  %s\n",
			s.ID,
			s.GameID,
			humanize.Comma(int64(s.Score)),
			player,
			humanize.Bytes(uint64(s.Stored)),
			humanize.Time(s.UpdatedAt),
		)
	}
	fmt.Println()
	fmt.Println("Run 'arcade play --resume <id>' to continue a game.")
	return nil
}

func runSavesRm(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	for _, id := range args {
		if err := store.DeleteSave(id); err != nil {
			return fmt.Errorf("deleting %s: %w", id, err)
		}
		fmt.Printf("Deleted %s\n", id)
	}
	return nil
}
