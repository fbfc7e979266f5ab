package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/api"
	"github.com/taiyousan15/ocrqc/internal/batch"
	"github.com/taiyousan15/ocrqc/internal/hocr"
	"github.com/taiyousan15/ocrqc/internal/qc"
)

var (
	analyzeReference     string
	analyzeHOCR          bool
	analyzeRequiredKeys  []string
	analyzeOptionalKeys  []string
	analyzeLowResolution bool
	analyzeLowContrast   bool
	analyzeNoisy         bool
	analyzeSkewed        bool
	analyzeHasShadows    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a document and print its quality report",
	Long: `Analyze scores an OCR-derived document without needing a running server.

The input may be plain text, YAML, or an hOCR/HTML file (text content is
extracted first). With --reference, accuracy is measured against a
known-correct transcript; without one, confidence is estimated from the
text alone.

Image-quality flags (--blurred etc.) describe the source scan and add
targeted recommendations; they never change numeric scores.

Examples:
  ocrqc analyze page.yaml
  ocrqc analyze page.yaml --reference page_truth.yaml
  ocrqc analyze page.yaml --required-keys title,text
  ocrqc analyze scan.hocr --low-contrast --skewed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0], analyzeHOCR)
		if err != nil {
			return err
		}

		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		req := qc.Request{
			Text: text,
			Schema: qc.SchemaSpec{
				RequiredKeys: analyzeRequiredKeys,
				OptionalKeys: analyzeOptionalKeys,
			},
		}

		if analyzeReference != "" {
			ref, err := batch.ReadDocument(analyzeReference)
			if err != nil {
				return err
			}
			req.Reference = ref
		}

		if analyzeLowResolution || analyzeLowContrast || analyzeNoisy || analyzeSkewed || analyzeHasShadows {
			req.Image = &qc.ImageSignals{
				LowResolution: analyzeLowResolution,
				LowContrast:   analyzeLowContrast,
				Noisy:         analyzeNoisy,
				Skewed:        analyzeSkewed,
				HasShadows:    analyzeHasShadows,
			}
		}

		report, err := engine.Analyze(cmd.Context(), req)
		if err != nil {
			return err
		}
		return api.Output(report)
	},
}

// readInput reads a document, forcing hOCR extraction when requested.
// Without the flag, .hocr/.html extensions are detected automatically.
func readInput(path string, forceHOCR bool) (string, error) {
	if forceHOCR {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return hocr.ExtractText(f)
	}
	return batch.ReadDocument(path)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeReference, "reference", "", "Path to a known-correct transcript")
	analyzeCmd.Flags().BoolVar(&analyzeHOCR, "hocr", false, "Treat the input as hOCR regardless of extension")
	analyzeCmd.Flags().StringSliceVar(&analyzeRequiredKeys, "required-keys", nil, "Schema keys that must appear")
	analyzeCmd.Flags().StringSliceVar(&analyzeOptionalKeys, "optional-keys", nil, "Schema keys that may appear")
	analyzeCmd.Flags().BoolVar(&analyzeLowResolution, "low-resolution", false, "Source image is low resolution")
	analyzeCmd.Flags().BoolVar(&analyzeLowContrast, "low-contrast", false, "Source image has low contrast")
	analyzeCmd.Flags().BoolVar(&analyzeNoisy, "noisy", false, "Source image is noisy")
	analyzeCmd.Flags().BoolVar(&analyzeSkewed, "skewed", false, "Source image is skewed")
	analyzeCmd.Flags().BoolVar(&analyzeHasShadows, "has-shadows", false, "Source image has shadows")

	rootCmd.AddCommand(analyzeCmd)
}
