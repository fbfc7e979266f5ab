package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/taiyousan15/ocrqc/internal/api"
	"github.com/taiyousan15/ocrqc/internal/svcctx"
	"github.com/taiyousan15/ocrqc/version"
)

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server  string       `json:"server"`
	Version string       `json:"version"`
	Engine  EngineStatus `json:"engine"`
}

// EngineStatus summarizes the active engine configuration.
type EngineStatus struct {
	GlyphEntries int  `json:"glyph_entries"`
	ScriptRanges int  `json:"script_ranges"`
	RequiredKeys int  `json:"required_keys"`
	FoldWidths   bool `json:"fold_widths"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Server:  "running",
		Version: version.GitRelease,
	}

	if engine := svcctx.EngineFrom(r.Context()); engine != nil {
		cfg := engine.Config()
		resp.Engine = EngineStatus{
			GlyphEntries: len(cfg.Glyphs),
			ScriptRanges: len(cfg.ScriptRanges),
			RequiredKeys: len(cfg.Schema.RequiredKeys),
			FoldWidths:   cfg.FoldWidths,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			fmt.Printf("Server:  %s\n", resp.Server)
			fmt.Printf("Version: %s\n", resp.Version)
			fmt.Printf("Engine:\n")
			fmt.Printf("  Glyph entries: %d\n", resp.Engine.GlyphEntries)
			fmt.Printf("  Script ranges: %d\n", resp.Engine.ScriptRanges)
			fmt.Printf("  Required keys: %d\n", resp.Engine.RequiredKeys)
			fmt.Printf("  Fold widths:   %t\n", resp.Engine.FoldWidths)
			return nil
		},
	}
}
