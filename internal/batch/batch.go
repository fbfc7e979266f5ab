// Package batch runs quality analysis over many documents concurrently.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/taiyousan15/ocrqc/internal/hocr"
	"github.com/taiyousan15/ocrqc/internal/qc"
)

// FileResult holds the outcome for a single input file. Failures are
// recorded per file so one bad document doesn't abort the batch.
type FileResult struct {
	File   string     `json:"file" yaml:"file"`
	Report *qc.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary aggregates the results of a batch run.
type Summary struct {
	ID        string         `json:"id" yaml:"id"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	Total     int            `json:"total" yaml:"total"`
	Failed    int            `json:"failed" yaml:"failed"`
	Grades    map[string]int `json:"grades" yaml:"grades"`
	Results   []FileResult   `json:"results" yaml:"results"`
}

// Processor analyzes batches of document files.
type Processor struct {
	engine  *qc.Engine
	workers int
	logger  *slog.Logger
}

// New creates a batch processor. workers caps concurrent analyses;
// values below 1 fall back to 1.
func New(engine *qc.Engine, workers int, logger *slog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		engine:  engine,
		workers: workers,
		logger:  logger.With("component", "batch"),
	}
}

// Expand resolves a glob pattern into a sorted list of files.
func Expand(pattern string) ([]string, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	return files, nil
}

// Run analyzes every file and collects per-file results in input order.
// It returns an error only when the context is cancelled; individual
// file failures are recorded in the summary.
func (p *Processor) Run(ctx context.Context, files []string) (*Summary, error) {
	started := time.Now().UTC()
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	p.logger.Info("starting batch", "files", len(files), "workers", p.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := p.analyzeFile(ctx, file)
			if err != nil {
				p.logger.Warn("file failed", "file", file, "error", err)
				results[i] = FileResult{File: file, Error: err.Error()}
				return nil
			}
			p.logger.Info("file analyzed",
				"file", file,
				"grade", report.Grade,
				"quality", report.Metrics.OverallQuality,
			)
			results[i] = FileResult{File: file, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		ID:        uuid.New().String(),
		StartedAt: started,
		Duration:  time.Since(started),
		Total:     len(files),
		Grades:    make(map[string]int),
		Results:   results,
	}
	for _, r := range results {
		if r.Report == nil {
			summary.Failed++
			continue
		}
		summary.Grades[r.Report.Grade]++
	}

	p.logger.Info("batch finished",
		"total", summary.Total,
		"failed", summary.Failed,
		"duration", summary.Duration,
	)
	return summary, nil
}

func (p *Processor) analyzeFile(ctx context.Context, file string) (*qc.Report, error) {
	text, err := ReadDocument(file)
	if err != nil {
		return nil, err
	}
	return p.engine.Analyze(ctx, qc.Request{Text: text})
}

// ReadDocument reads a document file as plain text. hOCR and HTML files
// are reduced to their text content first.
func ReadDocument(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".hocr", ".html", ".htm":
		text, err := hocr.ExtractText(strings.NewReader(string(data)))
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", file, err)
		}
		return text, nil
	default:
		return string(data), nil
	}
}
