package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/insights"
	"github.com/pable/go-cr-wrapped/internal/report"
	"github.com/pable/go-cr-wrapped/internal/storage"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <player-tag>",
	Short: "Print wrapped insights from a cached snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print insights as JSON instead of tables")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	profile, battles, err := db.GetSnapshot(args[0])
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no snapshot for %s. Run 'crwrapped fetch %s' first", args[0], args[0])
	}

	ins := insights.Analyze(*profile, battles)

	if showJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ins)
	}
	report.PrintWrapped(os.Stdout, ins)
	return nil
}
