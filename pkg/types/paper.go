// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TextSource identifies how the full text of a paper was obtained.
type TextSource string

const (
	// TextFromPDF means the text was extracted from the downloaded PDF.
	TextFromPDF TextSource = "pdf"

	// TextFromHTML means the text came from an alternate HTML rendering,
	// used when PDF extraction produced a near-empty result.
	TextFromHTML TextSource = "html"

	// TextNone means no usable text could be obtained.
	TextNone TextSource = "none"
)

// PaperRecord holds the verified metadata and extracted text of one paper.
// Identifier and URL are always populated from a verified fetch, never
// inferred. The record is created once per invocation and immutable after.
type PaperRecord struct {
	// Identifier is the input the record was resolved from: an arXiv ID
	// (e.g. "2504.15777") or the original URL for direct PDF fetches.
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title, blank when no metadata source was available.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// URL is the canonical source URL (e.g. "https://arxiv.org/abs/<id>").
	URL string `json:"url" yaml:"url"`

	// PDFURL is the URL the PDF was downloaded from.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Text is the extracted full text, pages separated by blank lines.
	// May be empty when every extraction path failed.
	Text string `json:"text" yaml:"-"`

	// TextSource records which extraction path produced Text.
	TextSource TextSource `json:"text_source,omitempty" yaml:"text_source,omitempty"`

	// LowConfidence marks a near-empty extraction so callers can fall back
	// to an alternate rendering or a paper-only review path.
	LowConfidence bool `json:"low_confidence,omitempty" yaml:"low_confidence,omitempty"`
}
