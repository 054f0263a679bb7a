package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/charts"
	"github.com/pable/go-cr-wrapped/internal/insights"
	"github.com/pable/go-cr-wrapped/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <player-tag>",
	Short: "Render a cached snapshot's insights as an HTML chart page",
	Long: `Recomputes insights from a cached snapshot and renders them as a
self-contained HTML page with trophy and card-usage charts.

Example:
  crwrapped export '#2PP' -o wrapped.html`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output HTML path (default <tag>.html)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	out := exportOut
	if out == "" {
		out = strings.TrimPrefix(profile.Tag, "#") + ".html"
	}
	if err := charts.RenderWrapped(ins, out); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
	return nil
}
