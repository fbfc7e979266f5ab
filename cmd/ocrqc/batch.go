package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/api"
	"github.com/taiyousan15/ocrqc/internal/batch"
	"github.com/taiyousan15/ocrqc/internal/home"
)

var (
	batchWorkers int
	batchSave    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <glob-or-files...>",
	Short: "Analyze many documents concurrently",
	Long: `Batch analyzes every matching file and prints a summary with per-file
reports. Failures are recorded per file, so one unreadable document
doesn't abort the run.

Examples:
  ocrqc batch 'pages/*.yaml'
  ocrqc batch a.yaml b.yaml c.yaml
  ocrqc batch 'scans/*.hocr' --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := newEngine()
		if err != nil {
			return err
		}

		files := args
		if len(args) == 1 {
			// A single argument may be an unexpanded glob
			if expanded, err := batch.Expand(args[0]); err == nil {
				files = expanded
			}
		}

		workers := batchWorkers
		if workers == 0 {
			workers = cfg.Batch.MaxWorkers
		}

		logger := newLogger(cfg.Log.Level)
		p := batch.New(engine, workers, logger)

		summary, err := p.Run(cmd.Context(), files)
		if err != nil {
			return err
		}

		if batchSave {
			if err := saveReports(summary); err != nil {
				return err
			}
		}
		return api.Output(summary)
	},
}

// saveReports writes each per-file report to the home reports directory.
func saveReports(summary *batch.Summary) error {
	h, err := home.New(homeDir)
	if err != nil {
		return err
	}
	if err := h.EnsureExists(); err != nil {
		return err
	}

	for _, r := range summary.Results {
		if r.Report == nil {
			continue
		}
		f, err := os.Create(h.ReportPath(r.Report.ID))
		if err != nil {
			return fmt.Errorf("failed to save report for %s: %w", r.File, err)
		}
		if err := api.OutputTo(f, api.OutputFormatYAML, r.Report); err != nil {
			f.Close()
			return fmt.Errorf("failed to write report for %s: %w", r.File, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent workers (default: from config)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Save each report to the home reports directory")

	rootCmd.AddCommand(batchCmd)
}
