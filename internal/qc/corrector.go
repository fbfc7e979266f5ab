package qc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// correctText applies dictionary-based, reversible substitutions from the
// confusable-glyph table. For every canonical/alternate pair it replaces
// whole-token occurrences of the alternate with the canonical glyph,
// left-to-right, recording one Correction per replacement.
//
// Because a replacement can change string length, each recorded position is
// the byte offset in the text as it existed immediately before that specific
// replacement. The corrector consults no surrounding context, so it can
// "correct" a legitimately-correct occurrence of an alternate glyph in a
// valid position; callers gate auto-apply on the correction confidence.
func correctText(text string, cfg Config) CorrectionResult {
	result := CorrectionResult{Text: text, Corrections: []Correction{}}

	if cfg.FoldWidths {
		foldWidths(&result, cfg.FoldConfidence)
	}

	for _, canonical := range sortedCanonicals(cfg.Glyphs) {
		for _, alt := range cfg.Glyphs[canonical] {
			replaceTokens(&result, alt, canonical, cfg.Patterns.GlyphConfidence)
		}
	}
	return result
}

// replaceTokens replaces whole-token occurrences of alt with canonical in
// the result text, advancing an explicit cursor over the mutating string.
func replaceTokens(result *CorrectionResult, alt, canonical string, confidence float64) {
	boundary := boundaryFunc(alt)
	pos := 0
	for {
		rel := strings.Index(result.Text[pos:], alt)
		if rel < 0 {
			return
		}
		idx := pos + rel
		end := idx + len(alt)

		before, hasBefore := lastRuneBefore(result.Text, idx)
		after, hasAfter := firstRuneAt(result.Text, end)
		if (hasBefore && !boundary(before)) || (hasAfter && !boundary(after)) {
			// Inside a larger token: skip this occurrence.
			_, sz := utf8.DecodeRuneInString(result.Text[idx:])
			pos = idx + sz
			continue
		}

		result.Corrections = append(result.Corrections, Correction{
			Position:   idx,
			Original:   alt,
			Corrected:  canonical,
			Confidence: confidence,
		})
		result.Text = result.Text[:idx] + canonical + result.Text[end:]
		pos = idx + len(canonical)
	}
}

// boundaryFunc returns the token-boundary predicate for an alternate: a
// neighboring rune bounds the token when it is outside the alternate's own
// character class. A letter alternate is bounded by anything that is not a
// letter (digits and punctuation included), so "1O0" corrects to "100"
// while the O in "WORD" is left alone.
func boundaryFunc(alt string) func(rune) bool {
	first, _ := utf8.DecodeRuneInString(alt)
	switch {
	case unicode.IsLetter(first):
		return func(r rune) bool { return !unicode.IsLetter(r) }
	case unicode.IsDigit(first):
		return func(r rune) bool { return !unicode.IsDigit(r) }
	default:
		return func(rune) bool { return true }
	}
}

// foldWidths narrows fullwidth ASCII variants (ＡＢＣ１２３ -> ABC123),
// recording a Correction per folded rune. Kana and other non-ASCII
// narrowings are left untouched.
func foldWidths(result *CorrectionResult, confidence float64) {
	pos := 0
	for pos < len(result.Text) {
		r, sz := utf8.DecodeRuneInString(result.Text[pos:])
		narrow := width.Narrow.String(string(r))
		if narrow == string(r) || !isASCIIPrintable(narrow) {
			pos += sz
			continue
		}
		result.Corrections = append(result.Corrections, Correction{
			Position:   pos,
			Original:   string(r),
			Corrected:  narrow,
			Confidence: confidence,
		})
		result.Text = result.Text[:pos] + narrow + result.Text[pos+sz:]
		pos += len(narrow)
	}
}

// lastRuneBefore decodes the rune ending at byte offset idx.
func lastRuneBefore(s string, idx int) (rune, bool) {
	if idx <= 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return r, true
}

// firstRuneAt decodes the rune starting at byte offset idx.
func firstRuneAt(s string, idx int) (rune, bool) {
	if idx >= len(s) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return r, true
}

func isASCIIPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return s != ""
}
