package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taiyousan15/ocrqc/internal/qc"
)

func testEngine(t *testing.T) *qc.Engine {
	t.Helper()
	engine, err := qc.New(qc.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yaml": "title: first document\ndescription: text body\ntext: hello\n",
		"b.yaml": "title: second document\ndescription: more text\ntext: world\n",
	})

	p := New(testEngine(t), 2, nil)
	files, err := Expand(filepath.Join(dir, "*.yaml"))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	summary, err := p.Run(context.Background(), files)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Total != 2 {
		t.Errorf("total = %d, want 2", summary.Total)
	}
	if summary.Failed != 0 {
		t.Errorf("failed = %d, want 0", summary.Failed)
	}
	if summary.ID == "" {
		t.Error("summary should carry an ID")
	}

	// Results keep input order
	for i, file := range files {
		if summary.Results[i].File != file {
			t.Errorf("result %d file = %s, want %s", i, summary.Results[i].File, file)
		}
		if summary.Results[i].Report == nil {
			t.Errorf("result %d missing report", i)
		}
	}

	var graded int
	for _, n := range summary.Grades {
		graded += n
	}
	if graded != 2 {
		t.Errorf("grade counts sum to %d, want 2", graded)
	}
}

func TestRunRecordsPerFileFailures(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"good.yaml": "title: fine document\ntext: content here\n",
	})
	files := []string{
		filepath.Join(dir, "good.yaml"),
		filepath.Join(dir, "missing.yaml"),
	}

	p := New(testEngine(t), 1, nil)
	summary, err := p.Run(context.Background(), files)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed)
	}
	if summary.Results[0].Report == nil {
		t.Error("good file should have a report")
	}
	if summary.Results[1].Error == "" {
		t.Error("missing file should record an error")
	}
}

func TestRunCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yaml": "title: doc\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(testEngine(t), 1, nil)
	if _, err := p.Run(ctx, []string{filepath.Join(dir, "a.yaml")}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestExpandNoMatches(t *testing.T) {
	if _, err := Expand(filepath.Join(t.TempDir(), "*.yaml")); err == nil {
		t.Error("expected error for empty glob")
	}
}

func TestReadDocument(t *testing.T) {
	t.Run("plain text file", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"doc.txt": "plain content"})
		text, err := ReadDocument(filepath.Join(dir, "doc.txt"))
		if err != nil {
			t.Fatalf("ReadDocument: %v", err)
		}
		if text != "plain content" {
			t.Errorf("text = %q", text)
		}
	})

	t.Run("hocr file extracts words", func(t *testing.T) {
		doc := `<html><body>
<div class="ocr_page">
 <span class="ocr_line">
  <span class="ocrx_word">title:</span>
  <span class="ocrx_word">Greeting</span>
 </span>
</div>
</body></html>`
		dir := writeFiles(t, map[string]string{"page.hocr": doc})
		text, err := ReadDocument(filepath.Join(dir, "page.hocr"))
		if err != nil {
			t.Fatalf("ReadDocument: %v", err)
		}
		if !strings.Contains(text, "title: Greeting") {
			t.Errorf("text = %q, want hOCR words", text)
		}
	})
}
