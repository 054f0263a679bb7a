package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/storage"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <player-tag>",
	Short: "Fetch a player and cache the snapshot locally",
	Long: `Fetches a player's profile and battle log from the Clash Royale API and
stores them in the local SQLite cache, so insights can be recomputed
offline with 'crwrapped show'.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	profile, err := client.GetPlayer(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch player: %w", err)
	}
	battles, err := client.GetBattleLog(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch battle log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.SaveSnapshot(profile, battles, time.Now()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Cached %s (%s): %d trophies, %d battles\n",
		profile.Name, profile.Tag, profile.Trophies, len(battles))
	return nil
}
