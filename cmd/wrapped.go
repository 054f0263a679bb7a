package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/insights"
	"github.com/pable/go-cr-wrapped/internal/report"
)

var wrappedJSON bool

var wrappedCmd = &cobra.Command{
	Use:   "wrapped <player-tag>",
	Short: "Fetch a player and print their wrapped insights",
	Long: `Fetches a player's profile and battle log live from the Clash Royale API
and prints their wrapped-style insights.

Examples:
  crwrapped wrapped '#2PP'
  crwrapped wrapped 2PP --json`,
	Args: cobra.ExactArgs(1),
	RunE: runWrapped,
}

func init() {
	wrappedCmd.Flags().BoolVar(&wrappedJSON, "json", false, "print insights as JSON instead of tables")
}

func runWrapped(cmd *cobra.Command, args []string) error {
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

	ins := insights.Analyze(*profile, battles)

	if wrappedJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ins)
	}
	report.PrintWrapped(os.Stdout, ins)
	return nil
}
