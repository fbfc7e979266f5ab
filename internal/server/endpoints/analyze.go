package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/api"
	"github.com/taiyousan15/ocrqc/internal/batch"
	"github.com/taiyousan15/ocrqc/internal/qc"
	"github.com/taiyousan15/ocrqc/internal/svcctx"
)

// maxBodyBytes caps request bodies; OCR output for a single document
// should never come close to this.
const maxBodyBytes = 10 << 20

// AnalyzeEndpoint handles POST /v1/analyze.
type AnalyzeEndpoint struct{}

func (e *AnalyzeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/analyze", e.handler
}

func (e *AnalyzeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req qc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	engine := svcctx.EngineFrom(r.Context())
	if engine == nil {
		writeError(w, http.StatusServiceUnavailable, "engine not initialized")
		return
	}

	report, err := engine.Analyze(r.Context(), req)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("analyze failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (e *AnalyzeEndpoint) Command(getServerURL func() string) *cobra.Command {
	var reference string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a document on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := batch.ReadDocument(args[0])
			if err != nil {
				return err
			}

			req := qc.Request{Text: text}
			if reference != "" {
				ref, err := batch.ReadDocument(reference)
				if err != nil {
					return err
				}
				req.Reference = ref
			}

			client := api.NewClient(getServerURL())
			var report qc.Report
			if err := client.Post(cmd.Context(), "/v1/analyze", req, &report); err != nil {
				return err
			}
			return api.Output(report)
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "Path to a known-correct transcript")
	return cmd
}
