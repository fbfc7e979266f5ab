package qc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// anomalyPattern is one suspicious-pattern class. Patterns are data, not
// behavior: new classes are added by extending the pattern list the engine
// is built with, not by branching detector code.
type anomalyPattern struct {
	kind      string
	rationale string
	find      func(text string) [][2]int // non-overlapping [start, end) byte spans
}

// regexPattern builds a pattern class from a regular expression.
func regexPattern(kind, rationale, expr string) anomalyPattern {
	re := regexp.MustCompile(expr)
	return anomalyPattern{
		kind:      kind,
		rationale: rationale,
		find: func(text string) [][2]int {
			matches := re.FindAllStringIndex(text, -1)
			spans := make([][2]int, len(matches))
			for i, m := range matches {
				spans[i] = [2]int{m[0], m[1]}
			}
			return spans
		},
	}
}

// repeatPattern flags the same character repeated minRun or more times
// consecutively. Hand-rolled because RE2 has no backreferences.
func repeatPattern(kind, rationale string, minRun int) anomalyPattern {
	return anomalyPattern{
		kind:      kind,
		rationale: rationale,
		find: func(text string) [][2]int {
			var spans [][2]int
			start := 0
			var prev rune
			count := 0
			for i, r := range text {
				if count > 0 && r == prev {
					count++
					continue
				}
				if count >= minRun {
					spans = append(spans, [2]int{start, i})
				}
				start = i
				prev = r
				count = 1
			}
			if count >= minRun {
				spans = append(spans, [2]int{start, len(text)})
			}
			return spans
		},
	}
}

// charsetPattern flags maximal runs of characters outside the permitted
// set: ASCII printable, whitespace, and the configured script ranges.
func charsetPattern(kind, rationale string, ranges []ScriptRange) anomalyPattern {
	permitted := func(r rune) bool {
		if r >= 0x20 && r <= 0x7E {
			return true
		}
		if r == '\n' || r == '\r' || r == '\t' {
			return true
		}
		for _, sr := range ranges {
			if sr.Contains(r) {
				return true
			}
		}
		return false
	}
	return anomalyPattern{
		kind:      kind,
		rationale: rationale,
		find: func(text string) [][2]int {
			var spans [][2]int
			runStart := -1
			for i, r := range text {
				if permitted(r) {
					if runStart >= 0 {
						spans = append(spans, [2]int{runStart, i})
						runStart = -1
					}
					continue
				}
				if runStart < 0 {
					runStart = i
				}
			}
			if runStart >= 0 {
				spans = append(spans, [2]int{runStart, len(text)})
			}
			return spans
		},
	}
}

// defaultPatterns assembles the configured pattern list.
func defaultPatterns(cfg AnomalyConfig, ranges []ScriptRange) []anomalyPattern {
	return []anomalyPattern{
		regexPattern(
			"long_letter_run",
			"implausibly long undivided word, likely merged tokens",
			fmt.Sprintf(`[A-Za-z]{%d,}`, cfg.MinLetterRun),
		),
		regexPattern(
			"long_digit_run",
			"implausibly long numeric run",
			fmt.Sprintf(`[0-9]{%d,}`, cfg.MinDigitRun),
		),
		charsetPattern(
			"unexpected_characters",
			"character outside expected script/encoding",
			ranges,
		),
		repeatPattern(
			"repeated_characters",
			"repetition consistent with scan noise",
			cfg.MinRepeatRun,
		),
	}
}

// detectAnomalies applies every pattern class to the whole text. Matches
// within one class never overlap; different classes may flag overlapping
// spans independently. The result is deterministic for a given text.
func detectAnomalies(text string, patterns []anomalyPattern) []SuspiciousMatch {
	var matches []SuspiciousMatch
	for _, p := range patterns {
		for _, span := range p.find(text) {
			matches = append(matches, SuspiciousMatch{
				PatternKind: p.kind,
				Text:        text[span[0]:span[1]],
				Offset:      span[0],
				Rationale:   p.rationale,
			})
		}
	}
	return matches
}

// scriptRatio is the share of non-whitespace characters that fall inside
// the expected script ranges. It returns ok=false when the text has no
// non-whitespace characters.
func scriptRatio(text string, ranges []ScriptRange) (float64, bool) {
	inScript := 0
	total := 0
	for _, r := range text {
		if strings.ContainsRune(" \t\r\n", r) {
			continue
		}
		total++
		for _, sr := range ranges {
			if sr.Contains(r) {
				inScript++
				break
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(inScript) / float64(total), true
}

// runeLen is the character length of text, not its byte length.
func runeLen(text string) int {
	return utf8.RuneCountInString(text)
}
