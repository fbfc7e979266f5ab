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

// CorrectRequest is the request body for text correction.
type CorrectRequest struct {
	Text string `json:"text"`
}

// CorrectEndpoint handles POST /v1/correct.
type CorrectEndpoint struct{}

func (e *CorrectEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/v1/correct", e.handler
}

func (e *CorrectEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req CorrectRequest
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

	writeJSON(w, http.StatusOK, engine.Correct(req.Text))
}

func (e *CorrectEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "correct <file>",
		Short: "Correct a document on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := batch.ReadDocument(args[0])
			if err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var result qc.CorrectionResult
			if err := client.Post(cmd.Context(), "/v1/correct", CorrectRequest{Text: text}, &result); err != nil {
				return err
			}
			return api.Output(result)
		},
	}
}
