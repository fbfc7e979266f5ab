// Package qc implements quality control for OCR-derived structured documents.
//
// Given raw text recovered by an external OCR step, the engine estimates how
// trustworthy the text is without ground truth, validates it against an
// expected key/value schema, detects known recognition-error classes,
// optionally scores it against a reference transcript, proposes reversible
// corrections, and folds everything into one graded QualityReport.
//
// Every component is a pure function of its inputs; an Engine can serve
// arbitrarily many concurrent Analyze and Correct calls with no locking.
package qc

import "time"

// Severity classifies how serious a schema issue is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Priority ranks recommendations for human triage.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// SchemaIssueKind identifies the class of a structural defect.
type SchemaIssueKind string

const (
	// IssueMissingRequiredKey means a required key never appears in the text.
	IssueMissingRequiredKey SchemaIssueKind = "missing_required_key"
	// IssueInvalidKeyCharacters means a key-position token contains characters
	// outside the allowed key character set.
	IssueInvalidKeyCharacters SchemaIssueKind = "invalid_key_characters"
)

// SchemaIssue is one structural defect found by the schema validator.
type SchemaIssue struct {
	Kind     SchemaIssueKind `json:"kind" yaml:"kind"`
	Severity Severity        `json:"severity" yaml:"severity"`
	// Key is the missing required key (missing_required_key only).
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
	// Line is the 1-based line number (invalid_key_characters only).
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// KeyText is the offending key text (invalid_key_characters only).
	KeyText string `json:"key_text,omitempty" yaml:"key_text,omitempty"`
}

// SchemaSpec describes the expected key set of a hierarchical document.
// It is owned by the caller and injected per analysis.
type SchemaSpec struct {
	RequiredKeys []string `json:"required_keys" yaml:"required_keys" mapstructure:"required_keys"`
	OptionalKeys []string `json:"optional_keys,omitempty" yaml:"optional_keys,omitempty" mapstructure:"optional_keys"`
}

// SuspiciousMatch is one locally-suspicious substring flagged by the
// anomaly detector.
type SuspiciousMatch struct {
	PatternKind string `json:"pattern_kind" yaml:"pattern_kind"`
	// Text is the matched substring.
	Text string `json:"text" yaml:"text"`
	// Offset is the byte offset of the match in the analyzed text.
	Offset    int    `json:"offset" yaml:"offset"`
	Rationale string `json:"rationale" yaml:"rationale"`
}

// ErrorPatternKind identifies a recognition-error class.
type ErrorPatternKind string

const (
	PatternCharSubstitution ErrorPatternKind = "char_substitution"
	PatternMissingSpaces    ErrorPatternKind = "missing_spaces"
)

// ErrorPattern is one detected recognition-error class occurrence.
type ErrorPattern struct {
	Kind ErrorPatternKind `json:"kind" yaml:"kind"`
	// Alternate is the confusable glyph as it appears in the text, and
	// Canonical its likely-correct counterpart (char_substitution only).
	Alternate string `json:"alternate,omitempty" yaml:"alternate,omitempty"`
	Canonical string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	// Occurrences is the raw occurrence count: glyph occurrences for
	// char_substitution, long no-space runs for missing_spaces.
	Occurrences int `json:"occurrences" yaml:"occurrences"`
	// Confidence is a fixed weight assigned per pattern kind, not computed.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// AccuracyMetrics holds reference-based accuracy scores. Present only when
// the caller supplied a reference transcript.
type AccuracyMetrics struct {
	CharacterAccuracy float64 `json:"character_accuracy" yaml:"character_accuracy"`
	WordAccuracy      float64 `json:"word_accuracy" yaml:"word_accuracy"`
	// CharacterErrorRate may exceed 1 when the OCR output is much longer
	// than the reference.
	CharacterErrorRate float64 `json:"character_error_rate" yaml:"character_error_rate"`
}

// QualityMetrics is the combined metric set of one analysis. Without a
// reference, character and word accuracy fall back to the confidence score.
type QualityMetrics struct {
	CharacterAccuracy float64 `json:"character_accuracy" yaml:"character_accuracy"`
	WordAccuracy      float64 `json:"word_accuracy" yaml:"word_accuracy"`
	ConfidenceScore   float64 `json:"confidence_score" yaml:"confidence_score"`
	ErrorRate         float64 `json:"error_rate" yaml:"error_rate"`
	SchemaValidity    float64 `json:"schema_validity" yaml:"schema_validity"`
	OverallQuality    float64 `json:"overall_quality" yaml:"overall_quality"`
}

// Recommendation is one prioritized, human-actionable suggestion.
type Recommendation struct {
	Category string   `json:"category" yaml:"category"`
	Priority Priority `json:"priority" yaml:"priority"`
	Issue    string   `json:"issue" yaml:"issue"`
	Solution string   `json:"solution" yaml:"solution"`
	// ExpectedImprovement is an advisory estimate, not a guarantee.
	ExpectedImprovement string `json:"expected_improvement" yaml:"expected_improvement"`
}

// ImageSignals carries boolean image-quality flags from an external image
// analyzer. They only influence recommendations, never numeric scores.
type ImageSignals struct {
	LowResolution bool `json:"low_resolution,omitempty" yaml:"low_resolution,omitempty"`
	LowContrast   bool `json:"low_contrast,omitempty" yaml:"low_contrast,omitempty"`
	Noisy         bool `json:"noisy,omitempty" yaml:"noisy,omitempty"`
	Skewed        bool `json:"skewed,omitempty" yaml:"skewed,omitempty"`
	HasShadows    bool `json:"has_shadows,omitempty" yaml:"has_shadows,omitempty"`
}

// Request contains the inputs for one analysis.
type Request struct {
	// Text is the raw OCR output under analysis.
	Text string `json:"text" yaml:"text"`
	// Reference is an optional known-correct transcript. When non-empty,
	// reference-based accuracy metrics are computed.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
	// Schema describes the expected document shape. When its key sets are
	// empty, the engine's default schema spec applies.
	Schema SchemaSpec `json:"schema" yaml:"schema"`
	// Image holds optional image-quality flags.
	Image *ImageSignals `json:"image,omitempty" yaml:"image,omitempty"`
}

// Report is the immutable result of one Analyze call. The caller owns any
// persistence; the engine keeps no record of it.
type Report struct {
	ID              string            `json:"id" yaml:"id"`
	CreatedAt       time.Time         `json:"created_at" yaml:"created_at"`
	Metrics         QualityMetrics    `json:"metrics" yaml:"metrics"`
	Accuracy        *AccuracyMetrics  `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`
	SchemaIssues    []SchemaIssue     `json:"schema_issues" yaml:"schema_issues"`
	Suspicious      []SuspiciousMatch `json:"suspicious" yaml:"suspicious"`
	ErrorPatterns   []ErrorPattern    `json:"error_patterns" yaml:"error_patterns"`
	Recommendations []Recommendation  `json:"recommendations" yaml:"recommendations"`
	Grade           string            `json:"grade" yaml:"grade"`
}

// Correction records one applied substitution. Position is the byte offset
// in the text as it existed immediately before this specific replacement,
// not an offset into the final text.
type Correction struct {
	Position   int     `json:"position" yaml:"position"`
	Original   string  `json:"original" yaml:"original"`
	Corrected  string  `json:"corrected" yaml:"corrected"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// CorrectionResult is the output of Correct: the corrected text plus the
// ordered list of applied corrections.
type CorrectionResult struct {
	Text        string       `json:"text" yaml:"text"`
	Corrections []Correction `json:"corrections" yaml:"corrections"`
}
