package qc

import (
	"context"
	"math"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	engine, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

func TestNew(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		if _, err := New(DefaultConfig()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid config fails at construction", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Grade.Bands = nil
		if _, err := New(cfg); err == nil {
			t.Fatal("expected construction-time error for invalid config")
		}
	})
}

func TestEngineAnalyze(t *testing.T) {
	t.Run("never fails on degenerate text", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		for _, text := range []string{"", " ", "\n\n\n", "\x00", strings.Repeat("?", 5)} {
			report, err := engine.Analyze(context.Background(), Request{Text: text})
			if err != nil {
				t.Fatalf("Analyze(%q): %v", text, err)
			}
			if report.Metrics.OverallQuality < 0 || report.Metrics.OverallQuality > 100 {
				t.Errorf("overall quality %v out of range for %q", report.Metrics.OverallQuality, text)
			}
			if report.Metrics.ConfidenceScore < 0 || report.Metrics.ConfidenceScore > 1 {
				t.Errorf("confidence %v out of range for %q", report.Metrics.ConfidenceScore, text)
			}
		}
	})

	t.Run("invalid per-request schema spec is rejected", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		_, err := engine.Analyze(context.Background(), Request{
			Text:   "x",
			Schema: SchemaSpec{RequiredKeys: []string{"k"}, OptionalKeys: []string{"k"}},
		})
		if err == nil {
			t.Fatal("expected an error for an overlapping schema spec")
		}
	})

	t.Run("reports carry unique ids", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		a, err := engine.Analyze(context.Background(), Request{Text: "same text"})
		if err != nil {
			t.Fatal(err)
		}
		b, err := engine.Analyze(context.Background(), Request{Text: "same text"})
		if err != nil {
			t.Fatal(err)
		}
		if a.ID == b.ID || a.ID == "" {
			t.Errorf("report ids not unique: %q, %q", a.ID, b.ID)
		}
	})

	t.Run("no reference falls back to confidence", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		report, err := engine.Analyze(context.Background(), Request{Text: strings.Repeat("こんにちは世界 ", 20)})
		if err != nil {
			t.Fatal(err)
		}
		if report.Accuracy != nil {
			t.Error("accuracy metrics must be absent without a reference")
		}
		m := report.Metrics
		if m.CharacterAccuracy != m.ConfidenceScore || m.WordAccuracy != m.ConfidenceScore {
			t.Errorf("accuracy fallback broken: %+v", m)
		}
		if math.Abs(m.ErrorRate-(1-m.ConfidenceScore)) > 1e-9 {
			t.Errorf("error rate = %v, want 1 - confidence", m.ErrorRate)
		}
	})

	t.Run("identical reference scores perfectly", func(t *testing.T) {
		engine := newTestEngine(t, func(c *Config) { c.ScriptRanges = nil })
		report, err := engine.Analyze(context.Background(), Request{
			Text:      "hello world",
			Reference: "hello world",
		})
		if err != nil {
			t.Fatal(err)
		}
		if report.Accuracy == nil {
			t.Fatal("expected accuracy metrics with a reference")
		}
		acc := *report.Accuracy
		if acc.CharacterAccuracy != 1.0 || acc.WordAccuracy != 1.0 || acc.CharacterErrorRate != 0 {
			t.Errorf("accuracy = %+v, want perfect", acc)
		}
		if report.Metrics.CharacterAccuracy != 1.0 || report.Metrics.ErrorRate != 0 {
			t.Errorf("metrics = %+v", report.Metrics)
		}
	})

	t.Run("short clean text loses exactly the short-text penalty", func(t *testing.T) {
		engine := newTestEngine(t, func(c *Config) {
			c.ScriptRanges = nil
			c.Schema = SchemaSpec{RequiredKeys: []string{"title"}}
		})
		// Short text, full key coverage, no suspicious matches.
		text := "title: short note well under the limit"
		report, err := engine.Analyze(context.Background(), Request{Text: text})
		if err != nil {
			t.Fatal(err)
		}
		want := 1.0 - engine.Config().Confidence.ShortTextPenalty
		if math.Abs(report.Metrics.ConfidenceScore-want) > 1e-9 {
			t.Errorf("confidence = %v, want %v", report.Metrics.ConfidenceScore, want)
		}
	})

	t.Run("grade matches the band table", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		report, err := engine.Analyze(context.Background(), Request{Text: strings.Repeat("a", 30)})
		if err != nil {
			t.Fatal(err)
		}
		want := gradeLabel(report.Metrics.OverallQuality, engine.Config().Grade.Bands)
		if report.Grade != want {
			t.Errorf("grade = %q, want %q for overall %v", report.Grade, want, report.Metrics.OverallQuality)
		}
	})

	t.Run("image signals only add recommendations", func(t *testing.T) {
		engine := newTestEngine(t, func(c *Config) { c.ScriptRanges = nil })
		req := Request{Text: strings.Repeat("steady text ", 20)}

		plain, err := engine.Analyze(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		req.Image = &ImageSignals{Noisy: true, HasShadows: true}
		flagged, err := engine.Analyze(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}

		if flagged.Metrics != plain.Metrics {
			t.Errorf("image signals changed metrics: %+v vs %+v", flagged.Metrics, plain.Metrics)
		}
		if len(flagged.Recommendations) != len(plain.Recommendations)+2 {
			t.Errorf("recommendations = %d, want %d",
				len(flagged.Recommendations), len(plain.Recommendations)+2)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := engine.Analyze(ctx, Request{Text: "x"}); err == nil {
			t.Fatal("expected a context error")
		}
	})

	t.Run("concurrent analyses are independent", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		done := make(chan *Report, 16)
		for i := 0; i < 16; i++ {
			go func() {
				report, err := engine.Analyze(context.Background(), Request{Text: strings.Repeat("a", 30)})
				if err != nil {
					t.Error(err)
				}
				done <- report
			}()
		}
		var first *Report
		for i := 0; i < 16; i++ {
			report := <-done
			if report == nil {
				continue
			}
			if first == nil {
				first = report
				continue
			}
			if report.Metrics != first.Metrics || report.Grade != first.Grade {
				t.Errorf("concurrent analyses disagree: %+v vs %+v", report.Metrics, first.Metrics)
			}
		}
	})
}

func TestEngineCorrect(t *testing.T) {
	engine := newTestEngine(t, func(c *Config) {
		c.Glyphs = map[string][]string{"0": {"O"}}
	})

	result := engine.Correct("1O0")
	if result.Text != "100" {
		t.Errorf("corrected text = %q, want %q", result.Text, "100")
	}
	if len(result.Corrections) != 1 {
		t.Errorf("corrections = %d, want 1", len(result.Corrections))
	}
}
