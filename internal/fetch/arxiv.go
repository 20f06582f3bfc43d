// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-review/internal/httputil"
	"github.com/pdiddy/paper-review/pkg/types"
)

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Title string `xml:"title,attr"`
	Href  string `xml:"href,attr"`
}

// fetchArxivMetadata retrieves title, authors, year, and abstract from the
// arXiv API and fills them into record. On failure the record keeps blank
// metadata fields; nothing is guessed.
func fetchArxivMetadata(ctx context.Context, client *http.Client, arxivID string, record *types.PaperRecord, cfg types.FetchConfig) error {
	apiURL := fmt.Sprintf("%s?id_list=%s", arxivAPIBase, arxivID)

	resp, err := httputil.Get(ctx, client, apiURL, cfg.HTTPConfig, "")
	if err != nil {
		return fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return fmt.Errorf("parsing arXiv response: %w", err)
	}

	if len(feed.Entries) == 0 {
		return fmt.Errorf("no entries found for arXiv ID %s", arxivID)
	}

	entry := feed.Entries[0]
	record.Title = collapseWhitespace(entry.Title)
	record.Abstract = strings.TrimSpace(entry.Summary)

	for _, a := range entry.Authors {
		record.Authors = append(record.Authors, strings.TrimSpace(a.Name))
	}

	if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
		record.Year = t.Year()
	}

	// The API reports its own PDF link; prefer it over the derived one.
	for _, link := range entry.Links {
		if link.Title == "pdf" && link.Href != "" {
			record.PDFURL = link.Href
		}
	}
	return nil
}

// collapseWhitespace flattens the newline-wrapped titles the arXiv feed returns.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
