package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/api"
	"github.com/taiyousan15/ocrqc/internal/config"
	"github.com/taiyousan15/ocrqc/internal/qc"
	"github.com/taiyousan15/ocrqc/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "ocrqc",
	Short: "Quality control and auto-correction for OCR-derived documents",
	Long: `ocrqc analyzes OCR output for structured documents: it scores schema
conformance, flags suspicious character patterns, estimates extraction
confidence, and applies conservative auto-corrections for common OCR
misreads.

Typical workflow:
  - ocrqc analyze page.yaml          # Score a single document
  - ocrqc correct page.yaml          # Fix common glyph confusions
  - ocrqc batch 'pages/*.yaml'       # Score a whole directory
  - ocrqc serve                      # Run the HTTP API`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.ocrqc/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "ocrqc home directory (default: ~/.ocrqc)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Manager, error) {
	return config.NewManager(cfgFile)
}

// newEngine builds a quality engine from the loaded configuration.
func newEngine() (*qc.Engine, *config.Config, error) {
	mgr, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cfg := mgr.Get()
	engine, err := qc.New(cfg.ToEngineConfig())
	if err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

// newLogger builds a structured logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
}
