package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cached player snapshots",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	snapshots, err := db.ListSnapshots()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(os.Stdout, "No snapshots cached yet. Run 'crwrapped fetch <tag>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-20s  %8s  %7s  %s\n",
		"TAG", "NAME", "TROPHIES", "BATTLES", "FETCHED")
	fmt.Fprintf(os.Stdout, "%-12s  %-20s  %8s  %7s  %s\n",
		"────────────", "────────────────────", "────────", "───────", "───────────────────")
	for _, s := range snapshots {
		fmt.Fprintf(os.Stdout, "%-12s  %-20s  %8d  %7d  %s\n",
			s.Tag, s.Name, s.Trophies, s.Battles, s.FetchedAt)
	}
	return nil
}
