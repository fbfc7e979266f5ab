package qc

import "strings"

// detectErrorPatterns matches known recognition-error classes: confusable
// glyph substitutions and missing word boundaries. Both checks are driven
// by configuration tables so they can be tuned without code changes.
func detectErrorPatterns(text string, glyphs map[string][]string, cfg PatternConfig) []ErrorPattern {
	var patterns []ErrorPattern

	// Confusable glyphs. This is a coarse, position-insensitive signal: an
	// alternate present anywhere counts, whether or not that occurrence is
	// actually an error.
	for _, canonical := range sortedCanonicals(glyphs) {
		for _, alt := range glyphs[canonical] {
			count := strings.Count(text, alt)
			if count == 0 {
				continue
			}
			patterns = append(patterns, ErrorPattern{
				Kind:        PatternCharSubstitution,
				Alternate:   alt,
				Canonical:   canonical,
				Occurrences: count,
				Confidence:  cfg.GlyphConfidence,
			})
		}
	}

	// Missing spaces: maximal whitespace-free substrings of threshold
	// length or more, reported as one pattern carrying the run count.
	if runs := longNoSpaceRuns(text, cfg.MinNoSpaceRun); runs > 0 {
		patterns = append(patterns, ErrorPattern{
			Kind:        PatternMissingSpaces,
			Occurrences: runs,
			Confidence:  cfg.NoSpaceConfidence,
		})
	}

	return patterns
}

// longNoSpaceRuns counts maximal whitespace-free substrings of at least
// minRun characters.
func longNoSpaceRuns(text string, minRun int) int {
	runs := 0
	for _, field := range strings.FieldsFunc(text, isSpace) {
		if runeLen(field) >= minRun {
			runs++
		}
	}
	return runs
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
