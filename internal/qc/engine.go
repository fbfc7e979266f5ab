package qc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Engine analyzes and corrects OCR-derived documents. It is immutable after
// construction and safe for concurrent use; every call is independent.
type Engine struct {
	cfg      Config
	patterns []anomalyPattern
}

// New builds an engine from cfg. Invalid configuration is rejected here,
// eagerly, so a misconfiguration fails once instead of skewing every report.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		cfg:      cfg,
		patterns: defaultPatterns(cfg.Anomaly, cfg.ScriptRanges),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze runs the full quality-control pipeline over one document and
// returns an immutable report. It never fails on malformed or degenerate
// text; the only error case is an invalid per-request schema spec.
//
// The schema validator, anomaly detector, error-pattern detector and (when
// a reference is present) accuracy scorer have no data dependency on each
// other and run concurrently. Confidence estimation depends on the anomaly
// matches; recommendations and grading run last.
func (e *Engine) Analyze(ctx context.Context, req Request) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec := req.Schema
	if len(spec.RequiredKeys) == 0 && len(spec.OptionalKeys) == 0 {
		spec = e.cfg.Schema
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema spec: %w", err)
	}

	var (
		validity   float64
		issues     []SchemaIssue
		suspicious []SuspiciousMatch
		patterns   []ErrorPattern
		accuracy   *AccuracyMetrics
	)

	var g errgroup.Group
	g.Go(func() error {
		validity, issues = validateSchema(req.Text, spec, e.cfg.SchemaWeights, e.cfg.Indicators)
		return nil
	})
	g.Go(func() error {
		suspicious = detectAnomalies(req.Text, e.patterns)
		return nil
	})
	g.Go(func() error {
		patterns = detectErrorPatterns(req.Text, e.cfg.Glyphs, e.cfg.Patterns)
		return nil
	})
	if req.Reference != "" {
		g.Go(func() error {
			m := scoreAccuracy(req.Text, req.Reference)
			accuracy = &m
			return nil
		})
	}
	// The detectors are pure and never fail; Wait only joins the fan-out.
	_ = g.Wait()

	confidence := estimateConfidence(req.Text, suspicious, e.cfg.Confidence, e.cfg.ScriptRanges)
	recs := recommend(validity, suspicious, patterns, confidence, req.Image, e.cfg.Recommend)
	overall, grade := gradeQuality(validity, confidence, len(suspicious), len(patterns), e.cfg.Grade)

	metrics := QualityMetrics{
		CharacterAccuracy: confidence,
		WordAccuracy:      confidence,
		ConfidenceScore:   confidence,
		ErrorRate:         1 - confidence,
		SchemaValidity:    validity,
		OverallQuality:    overall,
	}
	if accuracy != nil {
		metrics.CharacterAccuracy = accuracy.CharacterAccuracy
		metrics.WordAccuracy = accuracy.WordAccuracy
		metrics.ErrorRate = accuracy.CharacterErrorRate
	}

	return &Report{
		ID:              uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		Metrics:         metrics,
		Accuracy:        accuracy,
		SchemaIssues:    issues,
		Suspicious:      suspicious,
		ErrorPatterns:   patterns,
		Recommendations: recs,
		Grade:           grade,
	}, nil
}

// Correct applies the confusable-glyph table to text. It is a separate,
// explicit operation: Analyze never corrects implicitly.
func (e *Engine) Correct(text string) CorrectionResult {
	return correctText(text, e.cfg)
}
