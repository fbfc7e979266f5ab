package qc

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/width"
)

// Config holds every tunable of the engine. All weights, thresholds and
// tables are explicit configuration so behavior can be adjusted for new
// document languages or OCR models without touching the algorithms.
type Config struct {
	SchemaWeights SchemaWeights    `mapstructure:"schema_weights" yaml:"schema_weights"`
	Indicators    []string         `mapstructure:"indicators" yaml:"indicators"`
	Anomaly       AnomalyConfig    `mapstructure:"anomaly" yaml:"anomaly"`
	Confidence    ConfidenceConfig `mapstructure:"confidence" yaml:"confidence"`
	Patterns      PatternConfig    `mapstructure:"patterns" yaml:"patterns"`
	// Glyphs maps a canonical glyph to the alternates OCR engines commonly
	// misread it as.
	Glyphs map[string][]string `mapstructure:"glyphs" yaml:"glyphs"`
	// ScriptRanges are the Unicode ranges of the expected document script.
	// When empty, script-ratio checks are skipped entirely.
	ScriptRanges []ScriptRange   `mapstructure:"script_ranges" yaml:"script_ranges"`
	Recommend    RecommendConfig `mapstructure:"recommend" yaml:"recommend"`
	Grade        GradeConfig     `mapstructure:"grade" yaml:"grade"`
	// Schema is the default schema spec, used when a request carries none.
	Schema SchemaSpec `mapstructure:"schema" yaml:"schema"`
	// FoldWidths enables an extra correction pass that narrows fullwidth
	// ASCII variants (e.g. １２３ -> 123) before table substitutions run.
	FoldWidths bool `mapstructure:"fold_widths" yaml:"fold_widths"`
	// FoldConfidence is the confidence recorded for width-fold corrections.
	FoldConfidence float64 `mapstructure:"fold_confidence" yaml:"fold_confidence"`
}

// SchemaWeights are the schema-validity scoring weights. They must sum to 1.
type SchemaWeights struct {
	RequiredKeys float64 `mapstructure:"required_keys" yaml:"required_keys"`
	Indicators   float64 `mapstructure:"indicators" yaml:"indicators"`
	Indentation  float64 `mapstructure:"indentation" yaml:"indentation"`
}

// AnomalyConfig sets the run-length thresholds of the anomaly patterns.
type AnomalyConfig struct {
	MinLetterRun int `mapstructure:"min_letter_run" yaml:"min_letter_run"`
	MinDigitRun  int `mapstructure:"min_digit_run" yaml:"min_digit_run"`
	MinRepeatRun int `mapstructure:"min_repeat_run" yaml:"min_repeat_run"`
}

// ConfidenceConfig sets the deductions of the no-reference confidence
// estimator. Deductions stack additively from 1.0 and clamp at 0.
type ConfidenceConfig struct {
	MatchPenalty       float64 `mapstructure:"match_penalty" yaml:"match_penalty"`
	ShortTextLimit     int     `mapstructure:"short_text_limit" yaml:"short_text_limit"`
	ShortTextPenalty   float64 `mapstructure:"short_text_penalty" yaml:"short_text_penalty"`
	LongTextLimit      int     `mapstructure:"long_text_limit" yaml:"long_text_limit"`
	LongTextPenalty    float64 `mapstructure:"long_text_penalty" yaml:"long_text_penalty"`
	MinScriptRatio     float64 `mapstructure:"min_script_ratio" yaml:"min_script_ratio"`
	ScriptRatioPenalty float64 `mapstructure:"script_ratio_penalty" yaml:"script_ratio_penalty"`
}

// PatternConfig sets the error-pattern detector thresholds and the fixed
// per-kind confidence weights.
type PatternConfig struct {
	MinNoSpaceRun     int     `mapstructure:"min_nospace_run" yaml:"min_nospace_run"`
	GlyphConfidence   float64 `mapstructure:"glyph_confidence" yaml:"glyph_confidence"`
	NoSpaceConfidence float64 `mapstructure:"nospace_confidence" yaml:"nospace_confidence"`
}

// RecommendConfig sets the thresholds the recommendation rules fire at.
type RecommendConfig struct {
	MinSchemaValidity float64 `mapstructure:"min_schema_validity" yaml:"min_schema_validity"`
	MaxSuspicious     int     `mapstructure:"max_suspicious" yaml:"max_suspicious"`
	MinConfidence     float64 `mapstructure:"min_confidence" yaml:"min_confidence"`
}

// GradeConfig sets the overall-quality weighting and the grade bands.
// Weights must sum to 1; bands must be sorted by descending Min and end at 0.
type GradeConfig struct {
	SchemaWeight     float64     `mapstructure:"schema_weight" yaml:"schema_weight"`
	ConfidenceWeight float64     `mapstructure:"confidence_weight" yaml:"confidence_weight"`
	SuspiciousWeight float64     `mapstructure:"suspicious_weight" yaml:"suspicious_weight"`
	PatternWeight    float64     `mapstructure:"pattern_weight" yaml:"pattern_weight"`
	SuspiciousCap    int         `mapstructure:"suspicious_cap" yaml:"suspicious_cap"`
	PatternCap       int         `mapstructure:"pattern_cap" yaml:"pattern_cap"`
	Bands            []GradeBand `mapstructure:"bands" yaml:"bands"`
}

// GradeBand maps an inclusive lower bound of overall quality to a label.
type GradeBand struct {
	Min   float64 `mapstructure:"min" yaml:"min"`
	Label string  `mapstructure:"label" yaml:"label"`
}

// ScriptRange is one inclusive Unicode code point range.
type ScriptRange struct {
	Lo rune `mapstructure:"lo" yaml:"lo"`
	Hi rune `mapstructure:"hi" yaml:"hi"`
}

// Contains reports whether r falls inside the range.
func (s ScriptRange) Contains(r rune) bool {
	return r >= s.Lo && r <= s.Hi
}

// JapaneseScriptRanges covers hiragana, katakana, CJK ideographs, CJK
// punctuation and the halfwidth/fullwidth forms block.
func JapaneseScriptRanges() []ScriptRange {
	return []ScriptRange{
		{Lo: 0x3000, Hi: 0x303F}, // CJK symbols and punctuation
		{Lo: 0x3040, Hi: 0x309F}, // hiragana
		{Lo: 0x30A0, Hi: 0x30FF}, // katakana
		{Lo: 0x4E00, Hi: 0x9FFF}, // CJK unified ideographs
		{Lo: 0xFF00, Hi: 0xFFEF}, // halfwidth and fullwidth forms
	}
}

// DefaultGlyphs returns the default confusable-glyph table: classic
// digit/letter confusions, common merged glyph pairs, and the fullwidth
// variant of each ASCII digit.
func DefaultGlyphs() map[string][]string {
	glyphs := map[string][]string{
		"0": {"O", "o"},
		"1": {"l", "I"},
		"5": {"S"},
		"8": {"B"},
		"m": {"rn"},
		"w": {"vv"},
	}
	for d := '0'; d <= '9'; d++ {
		wide := width.Widen.String(string(d))
		glyphs[string(d)] = append(glyphs[string(d)], wide)
	}
	return glyphs
}

// DefaultIndicators is the generic structural indicator set.
func DefaultIndicators() []string {
	return []string{":", "-", "title", "description", "text"}
}

// DefaultConfig returns the engine defaults, tuned for the Japanese
// hierarchical key/value documents the original pipeline produces.
func DefaultConfig() Config {
	return Config{
		SchemaWeights: SchemaWeights{
			RequiredKeys: 0.60,
			Indicators:   0.20,
			Indentation:  0.20,
		},
		Indicators: DefaultIndicators(),
		Anomaly: AnomalyConfig{
			MinLetterRun: 20,
			MinDigitRun:  10,
			MinRepeatRun: 6,
		},
		Confidence: ConfidenceConfig{
			MatchPenalty:       0.05,
			ShortTextLimit:     100,
			ShortTextPenalty:   0.20,
			LongTextLimit:      10000,
			LongTextPenalty:    0.10,
			MinScriptRatio:     0.30,
			ScriptRatioPenalty: 0.15,
		},
		Patterns: PatternConfig{
			MinNoSpaceRun:     50,
			GlyphConfidence:   0.7,
			NoSpaceConfidence: 0.6,
		},
		Glyphs:       DefaultGlyphs(),
		ScriptRanges: JapaneseScriptRanges(),
		Recommend: RecommendConfig{
			MinSchemaValidity: 0.8,
			MaxSuspicious:     5,
			MinConfidence:     0.7,
		},
		Grade: GradeConfig{
			SchemaWeight:     0.35,
			ConfidenceWeight: 0.40,
			SuspiciousWeight: 0.15,
			PatternWeight:    0.10,
			SuspiciousCap:    20,
			PatternCap:       10,
			Bands: []GradeBand{
				{Min: 95, Label: "S"},
				{Min: 90, Label: "A+"},
				{Min: 85, Label: "A"},
				{Min: 80, Label: "B+"},
				{Min: 75, Label: "B"},
				{Min: 70, Label: "C+"},
				{Min: 65, Label: "C"},
				{Min: 0, Label: "D"},
			},
		},
		FoldWidths:     false,
		FoldConfidence: 0.9,
	}
}

const weightSumTolerance = 1e-9

// Validate rejects invalid configuration. It is called by New so that a
// misconfiguration fails once at construction time instead of silently
// skewing every report.
func (c Config) Validate() error {
	if err := c.Schema.Validate(); err != nil {
		return err
	}
	for name, w := range map[string]float64{
		"schema_weights.required_keys":  c.SchemaWeights.RequiredKeys,
		"schema_weights.indicators":     c.SchemaWeights.Indicators,
		"schema_weights.indentation":    c.SchemaWeights.Indentation,
		"confidence.match_penalty":      c.Confidence.MatchPenalty,
		"confidence.short_text_penalty": c.Confidence.ShortTextPenalty,
		"confidence.long_text_penalty":  c.Confidence.LongTextPenalty,
		"confidence.script_penalty":     c.Confidence.ScriptRatioPenalty,
		"grade.schema_weight":           c.Grade.SchemaWeight,
		"grade.confidence_weight":       c.Grade.ConfidenceWeight,
		"grade.suspicious_weight":       c.Grade.SuspiciousWeight,
		"grade.pattern_weight":          c.Grade.PatternWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, w)
		}
	}

	schemaSum := c.SchemaWeights.RequiredKeys + c.SchemaWeights.Indicators + c.SchemaWeights.Indentation
	if math.Abs(schemaSum-1.0) > weightSumTolerance {
		return fmt.Errorf("schema weights must sum to 1.0, got %v", schemaSum)
	}
	gradeSum := c.Grade.SchemaWeight + c.Grade.ConfidenceWeight + c.Grade.SuspiciousWeight + c.Grade.PatternWeight
	if math.Abs(gradeSum-1.0) > weightSumTolerance {
		return fmt.Errorf("grade weights must sum to 1.0, got %v", gradeSum)
	}

	if c.Anomaly.MinLetterRun < 2 || c.Anomaly.MinDigitRun < 2 || c.Anomaly.MinRepeatRun < 2 {
		return fmt.Errorf("anomaly run thresholds must be at least 2")
	}
	if c.Patterns.MinNoSpaceRun < 1 {
		return fmt.Errorf("patterns.min_nospace_run must be positive, got %d", c.Patterns.MinNoSpaceRun)
	}
	for _, conf := range []float64{c.Patterns.GlyphConfidence, c.Patterns.NoSpaceConfidence, c.FoldConfidence} {
		if conf < 0 || conf > 1 {
			return fmt.Errorf("pattern confidence weights must be in [0,1], got %v", conf)
		}
	}
	if c.Grade.SuspiciousCap < 1 || c.Grade.PatternCap < 1 {
		return fmt.Errorf("grade caps must be positive")
	}

	if len(c.Grade.Bands) == 0 {
		return fmt.Errorf("grade bands must not be empty")
	}
	for i, band := range c.Grade.Bands {
		if i > 0 && band.Min >= c.Grade.Bands[i-1].Min {
			return fmt.Errorf("grade bands must be sorted by strictly descending min")
		}
	}
	if last := c.Grade.Bands[len(c.Grade.Bands)-1]; last.Min != 0 {
		return fmt.Errorf("last grade band must start at 0 so every score is graded, got %v", last.Min)
	}

	for _, r := range c.ScriptRanges {
		if r.Lo > r.Hi {
			return fmt.Errorf("script range lo %U exceeds hi %U", r.Lo, r.Hi)
		}
	}
	for canonical, alternates := range c.Glyphs {
		if canonical == "" {
			return fmt.Errorf("glyph table contains an empty canonical glyph")
		}
		for _, alt := range alternates {
			if alt == "" {
				return fmt.Errorf("glyph table entry %q contains an empty alternate", canonical)
			}
			if alt == canonical {
				return fmt.Errorf("glyph table entry %q lists itself as an alternate", canonical)
			}
		}
	}
	return nil
}

// Validate rejects a schema spec whose required and optional key sets
// overlap or contain empty keys.
func (s SchemaSpec) Validate() error {
	required := make(map[string]bool, len(s.RequiredKeys))
	for _, k := range s.RequiredKeys {
		if k == "" {
			return fmt.Errorf("schema spec contains an empty required key")
		}
		required[k] = true
	}
	for _, k := range s.OptionalKeys {
		if k == "" {
			return fmt.Errorf("schema spec contains an empty optional key")
		}
		if required[k] {
			return fmt.Errorf("key %q is both required and optional", k)
		}
	}
	return nil
}

// sortedCanonicals returns the glyph table keys in deterministic order so
// detection and correction output is stable across runs.
func sortedCanonicals(glyphs map[string][]string) []string {
	keys := make([]string, 0, len(glyphs))
	for k := range glyphs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
