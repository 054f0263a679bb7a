package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/config"
	"github.com/pable/go-cr-wrapped/internal/royale"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "crwrapped",
	Short: "Clash Royale wrapped insights tool",
	Long:  "Fetch a Clash Royale player's profile and battle log and compute wrapped-style insights.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(config.Dir(), "wrapped.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite snapshot cache")

	rootCmd.AddCommand(wrappedCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// newClient builds an API client from the config file plus env overrides.
func newClient() (*royale.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return royale.NewClient(cfg.ClientConfig()), nil
}
