// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract obtains plain text from paper PDFs with pluggable
// backends: the pdftotext tool when installed, and an in-process reader
// otherwise. Pages are concatenated with blank lines, no structural markup.
package extract

import (
	"fmt"
	"io"
	"strings"
)

// Extractor transforms a PDF file into plain text. Backends implement this
// interface; callers try them in order.
type Extractor interface {
	// Name returns the backend identifier.
	Name() string

	// Extract reads the PDF at pdfPath and returns its plain text.
	Extract(pdfPath string) (string, error)
}

// Text runs the extractors in order and returns the first non-empty result
// together with the backend name that produced it. A failing backend is
// reported as a warning on w and the next one is tried; an error is
// returned only when every backend fails.
func Text(extractors []Extractor, pdfPath string, w io.Writer) (string, string, error) {
	var errs []string
	for _, e := range extractors {
		text, err := e.Extract(pdfPath)
		if err != nil {
			fmt.Fprintf(w, "  warning: %s extraction failed: %v\n", e.Name(), err)
			errs = append(errs, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, e.Name(), nil
		}
	}
	if len(errs) == 0 {
		return "", "", fmt.Errorf("no extractor produced text for %s", pdfPath)
	}
	return "", "", fmt.Errorf("all extractors failed for %s: %s", pdfPath, strings.Join(errs, "; "))
}

// Truncate caps text at max runes, appending an explicit marker when the
// text was cut.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + fmt.Sprintf("\n\n[... truncated at %d chars ...]", max)
}

// NearEmpty reports whether the extraction yielded too little text to be
// useful. Near-empty is not an error; it signals a low-confidence result.
func NearEmpty(text string, threshold int) bool {
	return len([]rune(strings.TrimSpace(text))) < threshold
}
