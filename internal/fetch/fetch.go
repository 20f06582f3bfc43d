// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch resolves a paper identifier (arXiv ID, arXiv URL, or direct
// PDF URL) to a PaperRecord: verified metadata plus extracted full text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-review/internal/extract"
	"github.com/pdiddy/paper-review/internal/httputil"
	"github.com/pdiddy/paper-review/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"

	defaultMaxTextChars       = 100000
	defaultLowConfidenceChars = 500
)

// FetchError reports a failure to obtain paper metadata or text. It echoes
// the unresolved input back to the caller.
type FetchError struct {
	Input string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q: %v", e.Input, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher coordinates identifier resolution, PDF download, and text
// extraction. Zero-value config fields fall back to defaults in Fetch.
type Fetcher struct {
	Client     *http.Client
	Extractors []extract.Extractor
	Config     types.FetchConfig
}

// New builds a Fetcher with the default extractor chain: pdftotext when
// installed, then the in-process reader.
func New(cfg types.FetchConfig) *Fetcher {
	var extractors []extract.Extractor
	pdftotext := &extract.PdftotextExtractor{}
	if pdftotext.Available() {
		extractors = append(extractors, pdftotext)
	}
	extractors = append(extractors, &extract.ReaderExtractor{})

	return &Fetcher{
		Client:     httputil.NewClient(cfg.HTTPConfig),
		Extractors: extractors,
		Config:     cfg,
	}
}

// Fetch resolves the identifier and returns a complete PaperRecord.
// Metadata failures degrade to blank fields with a warning on w; a download
// or resolution failure returns a *FetchError. Near-empty extraction is not
// an error: the record comes back flagged low-confidence, after an attempt
// at the alternate HTML rendering for arXiv papers.
func (f *Fetcher) Fetch(ctx context.Context, identifier string, w io.Writer) (*types.PaperRecord, error) {
	idType, normalized := Classify(identifier)
	if idType == TypeUnknown {
		return nil, &FetchError{Input: identifier, Err: errors.New("unrecognized identifier format")}
	}

	record := &types.PaperRecord{Identifier: normalized}
	switch idType {
	case TypeArxiv:
		record.URL = AbsURL(normalized)
		record.PDFURL = PDFURL(TypeArxiv, normalized)
		if err := fetchArxivMetadata(ctx, f.Client, normalized, record, f.Config); err != nil {
			fmt.Fprintf(w, "  warning: arXiv metadata fetch failed: %v\n", err)
		}
	case TypeDirectURL:
		record.URL = normalized
		record.PDFURL = normalized
	}

	pdfPath, cleanup, err := f.obtainPDF(ctx, idType, normalized, record.PDFURL, w)
	if err != nil {
		return nil, &FetchError{Input: identifier, Err: err}
	}
	defer cleanup()

	text, _, err := extract.Text(f.Extractors, pdfPath, w)
	if err != nil {
		fmt.Fprintf(w, "  warning: text extraction failed: %v\n", err)
		text = ""
	}
	record.Text = text
	record.TextSource = types.TextFromPDF
	if text == "" {
		record.TextSource = types.TextNone
	}

	threshold := f.Config.LowConfidenceChars
	if threshold <= 0 {
		threshold = defaultLowConfidenceChars
	}
	if extract.NearEmpty(record.Text, threshold) {
		record.LowConfidence = true
		if idType == TypeArxiv {
			f.tryHTMLFallback(ctx, normalized, threshold, record, w)
		}
	}

	maxChars := f.Config.MaxTextChars
	if maxChars <= 0 {
		maxChars = defaultMaxTextChars
	}
	record.Text = extract.Truncate(record.Text, maxChars)

	if f.Config.PapersDir != "" {
		metaPath := filepath.Join(f.Config.PapersDir, metadataDir, Slug(idType, normalized)+".yaml")
		if err := writeMetadata(record, metaPath); err != nil {
			fmt.Fprintf(w, "  warning: writing metadata sidecar: %v\n", err)
		}
	}

	return record, nil
}

// tryHTMLFallback replaces a near-empty extraction with the ar5iv HTML
// rendering when that rendering has usable text.
func (f *Fetcher) tryHTMLFallback(ctx context.Context, arxivID string, threshold int, record *types.PaperRecord, w io.Writer) {
	fmt.Fprintf(w, "  near-empty extraction, trying HTML rendering\n")
	html, err := extract.HTMLText(ctx, f.Client, ar5ivBase+arxivID, f.Config.HTTPConfig)
	if err != nil {
		fmt.Fprintf(w, "  warning: HTML fallback failed: %v\n", err)
		return
	}
	if extract.NearEmpty(html, threshold) {
		return
	}
	record.Text = html
	record.TextSource = types.TextFromHTML
	record.LowConfidence = false
}

// obtainPDF downloads the paper PDF and returns its local path plus a
// cleanup function. Without a papers dir the PDF lives in a temp file that
// cleanup removes; with one, it is kept under raw/ and an existing file
// skips the download.
func (f *Fetcher) obtainPDF(ctx context.Context, idType IdentifierType, normalized, pdfURL string, w io.Writer) (string, func(), error) {
	noop := func() {}

	if f.Config.PapersDir != "" {
		pdfPath := filepath.Join(f.Config.PapersDir, rawDir, Slug(idType, normalized)+".pdf")
		if _, err := os.Stat(pdfPath); err == nil {
			fmt.Fprintf(w, "skipped download: %s (already exists)\n", pdfPath)
			return pdfPath, noop, nil
		}
		if err := os.MkdirAll(filepath.Dir(pdfPath), 0o755); err != nil {
			return "", noop, fmt.Errorf("creating directory: %w", err)
		}
		if err := os.MkdirAll(filepath.Join(f.Config.PapersDir, metadataDir), 0o755); err != nil {
			return "", noop, fmt.Errorf("creating directory: %w", err)
		}
		fmt.Fprintf(w, "downloading: %s (%s)\n", normalized, idType)
		if err := f.downloadFile(ctx, pdfURL, pdfPath); err != nil {
			return "", noop, err
		}
		return pdfPath, noop, nil
	}

	tmp, err := os.CreateTemp("", "paper-review-*.pdf")
	if err != nil {
		return "", noop, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	fmt.Fprintf(w, "downloading: %s (%s)\n", normalized, idType)
	if err := f.downloadFile(ctx, pdfURL, tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", noop, err
	}
	return tmpPath, func() { os.Remove(tmpPath) }, nil
}

// downloadFile fetches url to destPath through a temporary file so a
// partial download never lands at the destination.
func (f *Fetcher) downloadFile(ctx context.Context, url, destPath string) error {
	resp, err := httputil.Get(ctx, f.Client, url, f.Config.HTTPConfig, "application/pdf")
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata writes a PaperRecord (without the full text) to a YAML sidecar.
func writeMetadata(record *types.PaperRecord, path string) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
