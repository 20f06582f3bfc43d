// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// IdentifierType classifies an input identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeArxiv
	TypeDirectURL
)

func (t IdentifierType) String() string {
	switch t {
	case TypeArxiv:
		return "arxiv"
	case TypeDirectURL:
		return "url"
	default:
		return "unknown"
	}
}

// Base URLs for identifier resolution. Declared as vars so tests can
// substitute httptest servers.
var (
	arxivAbsBase = "https://arxiv.org/abs/"
	arxivPDFBase = "https://arxiv.org/pdf/"
	arxivAPIBase = "https://export.arxiv.org/api/query"
	ar5ivBase    = "https://ar5iv.labs.arxiv.org/html/"
)

// arxivIDPattern matches bare arXiv IDs: "2504.15777", "arXiv:2504.15777",
// "2504.15777v2".
var arxivIDPattern = regexp.MustCompile(`^(?:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)$`)

// arxivURLPattern matches arXiv abstract and PDF page URLs.
var arxivURLPattern = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5}(?:v\d+)?)`)

// Classify determines the identifier type and returns the normalized form:
// the bare arXiv ID for arXiv inputs, the URL as given otherwise.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	if m := arxivIDPattern.FindStringSubmatch(identifier); m != nil {
		return TypeArxiv, m[1]
	}
	if m := arxivURLPattern.FindStringSubmatch(identifier); m != nil {
		return TypeArxiv, m[1]
	}
	if u, err := url.Parse(identifier); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return TypeDirectURL, identifier
	}
	return TypeUnknown, identifier
}

// AbsURL returns the canonical abstract page URL for an arXiv ID. The
// derivation round-trips: Classify(AbsURL(id)) yields id again.
func AbsURL(arxivID string) string {
	return arxivAbsBase + arxivID
}

// PDFURL returns the PDF download URL for the identifier.
func PDFURL(idType IdentifierType, normalized string) string {
	switch idType {
	case TypeArxiv:
		return arxivPDFBase + normalized
	case TypeDirectURL:
		return normalized
	default:
		return ""
	}
}

// Slug returns a filesystem-safe filename stem for the identifier, used for
// the optional papers-dir layout.
func Slug(idType IdentifierType, normalized string) string {
	switch idType {
	case TypeArxiv:
		return normalized
	case TypeDirectURL:
		u, err := url.Parse(normalized)
		if err != nil {
			return urlHashSlug(normalized)
		}
		base := strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path))
		if base == "" || base == "." || base == "/" {
			return urlHashSlug(normalized)
		}
		return base
	default:
		return "unknown"
	}
}

func urlHashSlug(rawURL string) string {
	h := sha256.Sum256([]byte(rawURL))
	return fmt.Sprintf("url-%x", h[:8])
}
