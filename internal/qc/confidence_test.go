package qc

import (
	"math"
	"strings"
	"testing"
)

func TestEstimateConfidence(t *testing.T) {
	cfg := DefaultConfig().Confidence

	t.Run("clean long text scores 1", func(t *testing.T) {
		text := strings.Repeat("word ", 40) // 200 chars, no anomalies
		got := estimateConfidence(text, nil, cfg, nil)
		if got != 1.0 {
			t.Errorf("confidence = %v, want 1.0", got)
		}
	})

	t.Run("short text penalty applies exactly once", func(t *testing.T) {
		// Length 40, no suspicious matches, no script ranges configured:
		// the only deduction is the short-text penalty.
		text := strings.Repeat("word ", 8) // 40 chars
		got := estimateConfidence(text, nil, cfg, nil)
		want := 1.0 - cfg.ShortTextPenalty
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("confidence = %v, want %v", got, want)
		}
	})

	t.Run("long text penalty", func(t *testing.T) {
		text := strings.Repeat("word ", 2100) // > 10000 chars
		got := estimateConfidence(text, nil, cfg, nil)
		want := 1.0 - cfg.LongTextPenalty
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("confidence = %v, want %v", got, want)
		}
	})

	t.Run("per-match deduction is uncapped", func(t *testing.T) {
		text := strings.Repeat("word ", 40)
		matches := make([]SuspiciousMatch, 30) // 30 * 0.05 = 1.5
		got := estimateConfidence(text, matches, cfg, nil)
		if got != 0 {
			t.Errorf("confidence = %v, want clamp at 0", got)
		}
	})

	t.Run("script ratio deduction", func(t *testing.T) {
		text := strings.Repeat("latin only text ", 10) // 160 chars, no Japanese
		got := estimateConfidence(text, nil, cfg, JapaneseScriptRanges())
		want := 1.0 - cfg.ScriptRatioPenalty
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("confidence = %v, want %v", got, want)
		}
	})

	t.Run("script deduction skipped without configured ranges", func(t *testing.T) {
		text := strings.Repeat("latin only text ", 10)
		got := estimateConfidence(text, nil, cfg, nil)
		if got != 1.0 {
			t.Errorf("confidence = %v, want 1.0 when no ranges configured", got)
		}
	})

	t.Run("deductions stack additively", func(t *testing.T) {
		text := "short" // < 100 chars
		matches := make([]SuspiciousMatch, 2)
		got := estimateConfidence(text, matches, cfg, nil)
		want := 1.0 - 2*cfg.MatchPenalty - cfg.ShortTextPenalty
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("confidence = %v, want %v", got, want)
		}
	})

	t.Run("length thresholds use characters not bytes", func(t *testing.T) {
		// 120 Japanese characters are 360 bytes; no short-text penalty.
		text := strings.Repeat("あ", 120)
		got := estimateConfidence(text, nil, cfg, JapaneseScriptRanges())
		if got != 1.0 {
			t.Errorf("confidence = %v, want 1.0 for 120-char text", got)
		}
	})
}
