// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-review/internal/extract"
	"github.com/pdiddy/paper-review/pkg/types"
)

const sampleArxivXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Test Paper
 Title</title>
    <summary>This is the abstract of the test paper.</summary>
    <published>2025-04-22T18:58:28Z</published>
    <author><name>Alice Smith</name></author>
    <author><name>Bob Jones</name></author>
  </entry>
</feed>`

const sampleHTML = `<html><body><article>
<h1>Test Paper Title</h1>
<p>` + "Long paragraph text from the HTML rendering. " + `</p>
<p>Second paragraph.</p>
</article></body></html>`

const fakePDFContent = "%PDF-1.4 fake"

// stubExtractor returns canned text, standing in for the PDF backends.
type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Name() string { return "stub" }

func (s *stubExtractor) Extract(string) (string, error) { return s.text, s.err }

// newTestServer serves fake PDF downloads, arXiv API responses, and an HTML
// rendering based on URL path.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/pdf/"), strings.HasPrefix(r.URL.Path, "/files/"):
			w.Header().Set("Content-Type", "application/pdf")
			fmt.Fprint(w, fakePDFContent)
		case r.URL.Path == "/api/query":
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprint(w, sampleArxivXML)
		case strings.HasPrefix(r.URL.Path, "/html/"):
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, strings.Repeat(sampleHTML, 1))
		default:
			http.NotFound(w, r)
		}
	}))
}

// pointBasesAt redirects the resolution endpoints at the test server and
// restores them on cleanup.
func pointBasesAt(t *testing.T, url string) {
	t.Helper()
	origPDF, origAPI, origAr5iv := arxivPDFBase, arxivAPIBase, ar5ivBase
	arxivPDFBase = url + "/pdf/"
	arxivAPIBase = url + "/api/query"
	ar5ivBase = url + "/html/"
	t.Cleanup(func() {
		arxivPDFBase, arxivAPIBase, ar5ivBase = origPDF, origAPI, origAr5iv
	})
}

func testFetcher(ts *httptest.Server, text string) *Fetcher {
	return &Fetcher{
		Client:     ts.Client(),
		Extractors: []extract.Extractor{&stubExtractor{text: text}},
		Config: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
		},
	}
}

func TestFetchArxiv(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	pointBasesAt(t, ts.URL)

	longText := strings.Repeat("body text ", 200)
	f := testFetcher(ts, longText)

	var buf bytes.Buffer
	record, err := f.Fetch(context.Background(), "2504.15777", &buf)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if record.Identifier != "2504.15777" {
		t.Errorf("Identifier = %q, want %q", record.Identifier, "2504.15777")
	}
	if record.Title != "Test Paper Title" {
		t.Errorf("Title = %q, want %q", record.Title, "Test Paper Title")
	}
	if len(record.Authors) != 2 || record.Authors[0] != "Alice Smith" {
		t.Errorf("Authors = %v, want [Alice Smith Bob Jones]", record.Authors)
	}
	if record.Year != 2025 {
		t.Errorf("Year = %d, want 2025", record.Year)
	}
	if want := AbsURL("2504.15777"); record.URL != want {
		t.Errorf("URL = %q, want %q", record.URL, want)
	}
	if record.Text != longText {
		t.Errorf("Text not preserved from extraction")
	}
	if record.LowConfidence {
		t.Errorf("LowConfidence = true for a full extraction")
	}
	if record.TextSource != types.TextFromPDF {
		t.Errorf("TextSource = %q, want %q", record.TextSource, types.TextFromPDF)
	}
}

func TestFetchDirectURLLeavesMetadataBlank(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	pointBasesAt(t, ts.URL)

	f := testFetcher(ts, strings.Repeat("text ", 200))
	pdfURL := ts.URL + "/files/paper.pdf"

	var buf bytes.Buffer
	record, err := f.Fetch(context.Background(), pdfURL, &buf)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if record.Title != "" || record.Abstract != "" || len(record.Authors) != 0 || record.Year != 0 {
		t.Errorf("metadata should stay blank for direct URLs, got %+v", record)
	}
	if record.URL != pdfURL {
		t.Errorf("URL = %q, want %q", record.URL, pdfURL)
	}
	if record.PDFURL != pdfURL {
		t.Errorf("PDFURL = %q, want %q", record.PDFURL, pdfURL)
	}
}

func TestFetchUnknownIdentifier(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	f := testFetcher(ts, "")

	var buf bytes.Buffer
	_, err := f.Fetch(context.Background(), "not-an-id", &buf)
	if err == nil {
		t.Fatal("Fetch() expected error for unrecognized identifier")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fetchErr.Input != "not-an-id" {
		t.Errorf("FetchError.Input = %q, want the unresolved input echoed back", fetchErr.Input)
	}
}

func TestFetchNearEmptyFallsBackToHTML(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	pointBasesAt(t, ts.URL)

	// Stub extraction yields almost nothing; the HTML rendering has text.
	f := testFetcher(ts, "x")
	f.Config.LowConfidenceChars = 50

	var buf bytes.Buffer
	record, err := f.Fetch(context.Background(), "2504.15777", &buf)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if record.TextSource != types.TextFromHTML {
		t.Errorf("TextSource = %q, want %q", record.TextSource, types.TextFromHTML)
	}
	if record.LowConfidence {
		t.Errorf("LowConfidence should clear after a successful HTML fallback")
	}
	if !strings.Contains(record.Text, "Second paragraph.") {
		t.Errorf("Text missing HTML content: %q", record.Text)
	}
}

func TestFetchNearEmptyWithoutFallbackStaysLowConfidence(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/pdf/"):
			fmt.Fprint(w, fakePDFContent)
		case r.URL.Path == "/api/query":
			fmt.Fprint(w, sampleArxivXML)
		default:
			http.NotFound(w, r) // no HTML rendering available
		}
	}))
	defer ts.Close()
	pointBasesAt(t, ts.URL)

	f := testFetcher(ts, "x")

	var buf bytes.Buffer
	record, err := f.Fetch(context.Background(), "2504.15777", &buf)
	if err != nil {
		t.Fatalf("near-empty extraction must not be an error, got %v", err)
	}
	if !record.LowConfidence {
		t.Error("LowConfidence = false, want true for near-empty text")
	}
}

func TestFetchTruncatesLongText(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	pointBasesAt(t, ts.URL)

	f := testFetcher(ts, strings.Repeat("a", 5000))
	f.Config.MaxTextChars = 1000

	var buf bytes.Buffer
	record, err := f.Fetch(context.Background(), "2504.15777", &buf)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.HasSuffix(record.Text, "[... truncated at 1000 chars ...]") {
		t.Errorf("expected truncation marker, got tail %q", record.Text[len(record.Text)-40:])
	}
}

func TestFetchPapersDirKeepsPDFAndSidecar(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()
	pointBasesAt(t, ts.URL)

	dir := t.TempDir()
	f := testFetcher(ts, strings.Repeat("text ", 200))
	f.Config.PapersDir = dir

	var buf bytes.Buffer
	if _, err := f.Fetch(context.Background(), "2504.15777", &buf); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	pdfPath := filepath.Join(dir, "raw", "2504.15777.pdf")
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("expected PDF at %s: %v", pdfPath, err)
	}
	if string(data) != fakePDFContent {
		t.Errorf("PDF content mismatch")
	}
	if _, err := os.Stat(filepath.Join(dir, "metadata", "2504.15777.yaml")); err != nil {
		t.Errorf("expected metadata sidecar: %v", err)
	}

	// A second fetch skips the download.
	buf.Reset()
	if _, err := f.Fetch(context.Background(), "2504.15777", &buf); err != nil {
		t.Fatalf("Fetch() second run error = %v", err)
	}
	if !strings.Contains(buf.String(), "skipped download") {
		t.Errorf("expected skip message, got %q", buf.String())
	}
}

func TestFetchMetadataFailureDegradesToBlank(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/pdf/") {
			fmt.Fprint(w, fakePDFContent)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	pointBasesAt(t, ts.URL)

	f := testFetcher(ts, strings.Repeat("text ", 200))

	var buf bytes.Buffer
	record, err := f.Fetch(context.Background(), "2504.15777", &buf)
	if err != nil {
		t.Fatalf("metadata failure must not fail the fetch: %v", err)
	}
	if record.Title != "" {
		t.Errorf("Title = %q, want blank on metadata failure", record.Title)
	}
	if !strings.Contains(buf.String(), "metadata fetch failed") {
		t.Errorf("expected a metadata warning, got %q", buf.String())
	}
}
