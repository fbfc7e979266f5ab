package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/api"
	"github.com/taiyousan15/ocrqc/internal/batch"
	"github.com/taiyousan15/ocrqc/internal/qc"
)

var (
	correctWrite      bool
	correctFoldWidths bool
)

var correctCmd = &cobra.Command{
	Use:   "correct <file>",
	Short: "Apply conservative auto-corrections to a document",
	Long: `Correct replaces common OCR glyph confusions (O for 0, l for 1, rn
for m, ...) using whole-token matching, so corrections never fire inside
larger words. The corrected text and the list of applied substitutions
are printed; with --write the file is updated in place.

Examples:
  ocrqc correct page.yaml
  ocrqc correct page.yaml --write
  ocrqc correct page.yaml --fold-widths   # also narrow fullwidth digits`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := batch.ReadDocument(args[0])
		if err != nil {
			return err
		}

		engine, _, err := newEngine()
		if err != nil {
			return err
		}
		if correctFoldWidths {
			cfg := engine.Config()
			cfg.FoldWidths = true
			if engine, err = qc.New(cfg); err != nil {
				return err
			}
		}

		result := engine.Correct(text)

		if correctWrite {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], []byte(result.Text), info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write corrected file: %w", err)
			}
			fmt.Printf("Applied %d corrections to %s\n", len(result.Corrections), args[0])
			return nil
		}

		return api.Output(result)
	},
}

func init() {
	correctCmd.Flags().BoolVar(&correctWrite, "write", false, "Rewrite the file in place")
	correctCmd.Flags().BoolVar(&correctFoldWidths, "fold-widths", false, "Also narrow fullwidth ASCII variants")

	rootCmd.AddCommand(correctCmd)
}
