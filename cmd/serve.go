package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/server"
)

var (
	serveAddr    string
	serveOrigins string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the wrapped insights HTTP API",
	Long: `Starts an HTTP server exposing insights over REST:

  GET  /health       liveness check
  POST /api/player   {"tag": "#2PP"} -> profile + insights

The server fetches live from the Clash Royale API on every request.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveOrigins, "origins", "http://localhost:5173", "comma-separated allowed CORS origins")
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	origins := strings.Split(serveOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	srv := server.New(client, origins)
	fmt.Printf("Listening on %s\n", serveAddr)
	return srv.ListenAndServe(cmd.Context(), serveAddr)
}
