package qc

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "overlapping required and optional keys",
			mutate: func(c *Config) {
				c.Schema = SchemaSpec{RequiredKeys: []string{"a"}, OptionalKeys: []string{"a"}}
			},
			wantErr: "both required and optional",
		},
		{
			name:    "negative weight",
			mutate:  func(c *Config) { c.Confidence.MatchPenalty = -0.05 },
			wantErr: "must not be negative",
		},
		{
			name: "schema weights not summing to one",
			mutate: func(c *Config) {
				c.SchemaWeights = SchemaWeights{RequiredKeys: 0.5, Indicators: 0.2, Indentation: 0.2}
			},
			wantErr: "sum to 1.0",
		},
		{
			name: "grade weights not summing to one",
			mutate: func(c *Config) {
				c.Grade.SchemaWeight = 0.5
			},
			wantErr: "sum to 1.0",
		},
		{
			name:    "empty grade bands",
			mutate:  func(c *Config) { c.Grade.Bands = nil },
			wantErr: "must not be empty",
		},
		{
			name: "bands not descending",
			mutate: func(c *Config) {
				c.Grade.Bands = []GradeBand{{Min: 50, Label: "A"}, {Min: 80, Label: "B"}, {Min: 0, Label: "C"}}
			},
			wantErr: "descending",
		},
		{
			name: "last band not at zero leaves scores ungraded",
			mutate: func(c *Config) {
				c.Grade.Bands = []GradeBand{{Min: 90, Label: "A"}, {Min: 50, Label: "B"}}
			},
			wantErr: "start at 0",
		},
		{
			name:    "inverted script range",
			mutate:  func(c *Config) { c.ScriptRanges = []ScriptRange{{Lo: 0x30FF, Hi: 0x30A0}} },
			wantErr: "exceeds",
		},
		{
			name:    "glyph listing itself as alternate",
			mutate:  func(c *Config) { c.Glyphs = map[string][]string{"0": {"0"}} },
			wantErr: "itself",
		},
		{
			name:    "pattern confidence out of range",
			mutate:  func(c *Config) { c.Patterns.GlyphConfidence = 1.5 },
			wantErr: "in [0,1]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultGlyphs(t *testing.T) {
	glyphs := DefaultGlyphs()

	t.Run("classic confusables present", func(t *testing.T) {
		zero := glyphs["0"]
		hasO := false
		for _, alt := range zero {
			if alt == "O" {
				hasO = true
			}
		}
		if !hasO {
			t.Error(`"0" must list "O" as an alternate`)
		}
	})

	t.Run("fullwidth digits generated for every digit", func(t *testing.T) {
		for d := '0'; d <= '9'; d++ {
			alternates := glyphs[string(d)]
			found := false
			for _, alt := range alternates {
				if alt == string(d+0xFEE0) { // fullwidth offset
					found = true
				}
			}
			if !found {
				t.Errorf("no fullwidth alternate for %q: %v", string(d), alternates)
			}
		}
	})
}
