package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/api"
	"github.com/taiyousan15/ocrqc/internal/server/endpoints"
)

var statusWait time.Duration

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running server's status",
	Long: `Status queries a running ocrqc server. With --wait, the command polls
the health endpoint until the server responds or the timeout elapses,
which is useful right after 'ocrqc serve' starts.

Examples:
  ocrqc status
  ocrqc status --wait 30s
  ocrqc status --server http://10.0.0.5:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.NewClient(getServerURL())

		if statusWait > 0 {
			if err := client.WaitReady(cmd.Context(), statusWait); err != nil {
				return fmt.Errorf("server not ready within %s: %w", statusWait, err)
			}
		}

		var resp endpoints.StatusResponse
		if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
			return err
		}
		return api.Output(resp)
	},
}

func init() {
	statusCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	statusCmd.Flags().DurationVar(&statusWait, "wait", 0, "Poll until the server is ready")

	rootCmd.AddCommand(statusCmd)
}
