// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReaderExtractor extracts text in-process, page by page. It needs no
// external tooling, at the cost of rougher layout handling than pdftotext.
type ReaderExtractor struct{}

// Name returns the backend identifier.
func (e *ReaderExtractor) Name() string { return "go-pdf" }

// Extract reads each page's plain text and joins pages with blank lines.
// The underlying reader panics on some malformed files, so the panic is
// converted into an error.
func (e *ReaderExtractor) Extract(pdfPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading %s: %v", pdfPath, r)
		}
	}()

	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			pages = append(pages, pageText)
		}
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no text found in %s", pdfPath)
	}
	return strings.Join(pages, "\n\n"), nil
}
