// Package hocr extracts plain text from hOCR documents so OCR engines that
// emit hOCR can feed the quality engine directly.
package hocr

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText walks an hOCR document and returns its plain text: ocrx_word
// spans joined with spaces, ocr_line and ocr_par elements separated by
// newlines. Documents without hOCR class markup fall back to the
// concatenated text content.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse hOCR: %w", err)
	}

	var b strings.Builder
	sawMarkup := walk(doc, &b)
	if !sawMarkup {
		b.Reset()
		collectText(doc, &b)
	}
	return normalize(b.String()), nil
}

// walk appends word and line text to b and reports whether any hOCR class
// markup was seen.
func walk(n *html.Node, b *strings.Builder) bool {
	saw := false
	if n.Type == html.ElementNode {
		class := attrVal(n, "class")
		switch {
		case strings.Contains(class, "ocrx_word"):
			// Stray spacing is collapsed by normalize afterwards.
			b.WriteByte(' ')
			collectText(n, b)
			return true
		case strings.Contains(class, "ocr_line"), strings.Contains(class, "ocr_par"):
			saw = true
			defer b.WriteByte('\n')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, b) {
			saw = true
		}
	}
	return saw
}

// collectText appends the concatenated text content of n.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	// Skip non-content elements when falling back to raw text.
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "head") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// normalize collapses stray space runs and blank lines left by markup.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
