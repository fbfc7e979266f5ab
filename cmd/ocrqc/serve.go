package main

import (
	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/home"
	"github.com/taiyousan15/ocrqc/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ocrqc server",
	Long: `Start the ocrqc HTTP API server.

The server provides:
  - POST /v1/analyze - Score a document
  - POST /v1/correct - Apply auto-corrections
  - GET  /health     - Basic health check
  - GET  /status     - Server and engine status

Configuration changes are hot-reloaded while the server runs.

Examples:
  ocrqc serve                    # Start on default port 8080
  ocrqc serve --port 3000        # Start on custom port
  ocrqc serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		logger := newLogger(cfg.Log.Level)

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: mgr,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: from config)")

	rootCmd.AddCommand(serveCmd)
}
