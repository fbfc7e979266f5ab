package qc

import (
	"regexp"
	"strings"
)

// validKeyChars is the allowed key character set: word characters (any
// script), hyphen and underscore.
var validKeyChars = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// validateSchema scores how well text matches the expected hierarchical
// key/value shape and lists its structural defects.
//
// The validity score has three weighted terms: required-key coverage,
// generic structural indicators, and consistent hierarchical indentation.
// Issue generation runs over the same inputs but is independent of the
// score.
func validateSchema(text string, spec SchemaSpec, weights SchemaWeights, indicators []string) (float64, []SchemaIssue) {
	var score float64
	var issues []SchemaIssue

	// Required-key coverage. An empty required set contributes 0.
	if len(spec.RequiredKeys) > 0 {
		found := 0
		for _, key := range spec.RequiredKeys {
			if strings.Contains(text, key) {
				found++
			} else {
				issues = append(issues, SchemaIssue{
					Kind:     IssueMissingRequiredKey,
					Severity: SeverityHigh,
					Key:      key,
				})
			}
		}
		score += weights.RequiredKeys * float64(found) / float64(len(spec.RequiredKeys))
	}

	// Generic structural indicators.
	if len(indicators) > 0 {
		found := 0
		for _, ind := range indicators {
			if strings.Contains(text, ind) {
				found++
			}
		}
		score += weights.Indicators * float64(found) / float64(len(indicators))
	}

	lines := strings.Split(text, "\n")

	// Indentation term: share of non-empty lines starting with at least two
	// leading spaces, doubled and capped so indentation alone never exceeds
	// its weight. Zero non-empty lines contribute 0.
	nonEmpty := 0
	indented := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(line, "  ") {
			indented++
		}
	}
	if nonEmpty > 0 {
		ratio := 2 * float64(indented) / float64(nonEmpty)
		if ratio > 1 {
			ratio = 1
		}
		score += weights.Indentation * ratio
	}

	// Key-character issues: any colon line whose trimmed left-hand side
	// contains a character outside the allowed key set.
	for i, line := range lines {
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		key := strings.TrimSpace(line[:colon])
		if key == "" || validKeyChars.MatchString(key) {
			continue
		}
		issues = append(issues, SchemaIssue{
			Kind:     IssueInvalidKeyCharacters,
			Severity: SeverityMedium,
			Line:     i + 1,
			KeyText:  key,
		})
	}

	return score, issues
}
