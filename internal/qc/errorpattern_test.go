package qc

import (
	"strings"
	"testing"
)

func TestDetectErrorPatterns(t *testing.T) {
	cfg := DefaultConfig().Patterns

	t.Run("confusable alternate counted", func(t *testing.T) {
		glyphs := map[string][]string{"0": {"O"}}

		patterns := detectErrorPatterns("1O0", glyphs, cfg)
		if len(patterns) != 1 {
			t.Fatalf("patterns = %d, want 1", len(patterns))
		}
		p := patterns[0]
		if p.Kind != PatternCharSubstitution {
			t.Errorf("kind = %s, want char_substitution", p.Kind)
		}
		if p.Alternate != "O" || p.Canonical != "0" {
			t.Errorf("alternate/canonical = %q/%q, want O/0", p.Alternate, p.Canonical)
		}
		if p.Occurrences != 1 {
			t.Errorf("occurrences = %d, want 1", p.Occurrences)
		}
		if p.Confidence != 0.7 {
			t.Errorf("confidence = %v, want 0.7", p.Confidence)
		}
	})

	t.Run("occurrences are raw counts", func(t *testing.T) {
		glyphs := map[string][]string{"1": {"l"}}

		patterns := detectErrorPatterns("hello little llama", glyphs, cfg)
		if len(patterns) != 1 {
			t.Fatalf("patterns = %d, want 1", len(patterns))
		}
		if patterns[0].Occurrences != 6 {
			t.Errorf("occurrences = %d, want 6", patterns[0].Occurrences)
		}
	})

	t.Run("output order is deterministic", func(t *testing.T) {
		glyphs := map[string][]string{
			"1": {"l"},
			"0": {"O"},
		}

		patterns := detectErrorPatterns("lO", glyphs, cfg)
		if len(patterns) != 2 {
			t.Fatalf("patterns = %d, want 2", len(patterns))
		}
		if patterns[0].Canonical != "0" || patterns[1].Canonical != "1" {
			t.Errorf("patterns not in canonical order: %v", patterns)
		}
	})

	t.Run("missing spaces", func(t *testing.T) {
		run := strings.Repeat("x0", 30) // 60 chars, no whitespace
		text := run + " middle " + run

		patterns := detectErrorPatterns(text, map[string][]string{}, cfg)
		if len(patterns) != 1 {
			t.Fatalf("patterns = %d, want 1", len(patterns))
		}
		p := patterns[0]
		if p.Kind != PatternMissingSpaces {
			t.Errorf("kind = %s, want missing_spaces", p.Kind)
		}
		if p.Occurrences != 2 {
			t.Errorf("run count = %d, want 2", p.Occurrences)
		}
		if p.Confidence != 0.6 {
			t.Errorf("confidence = %v, want 0.6", p.Confidence)
		}
	})

	t.Run("runs under threshold are ignored", func(t *testing.T) {
		text := strings.Repeat("xy", 24) // 48 chars
		patterns := detectErrorPatterns(text, map[string][]string{}, cfg)
		if len(patterns) != 0 {
			t.Errorf("patterns = %v, want none", patterns)
		}
	})
}
