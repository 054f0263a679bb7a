package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/storage"
)

var dropAll bool

// dropCmd removes cached snapshots.
var dropCmd = &cobra.Command{
	Use:   "drop [player-tag]",
	Short: "Delete a cached snapshot, or the whole cache with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVar(&dropAll, "all", false, "delete the entire cache database file")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropAll {
		if err := os.Remove(dbPath); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(os.Stdout, "Cache does not exist, nothing to drop.")
				return nil
			}
			return fmt.Errorf("remove database: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("pass a player tag, or --all to delete the whole cache")
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	deleted, err := db.DeleteSnapshot(args[0])
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if !deleted {
		fmt.Fprintf(os.Stdout, "No snapshot for %s.\n", args[0])
		return nil
	}
	fmt.Fprintf(os.Stdout, "Dropped snapshot for %s.\n", args[0])
	return nil
}
