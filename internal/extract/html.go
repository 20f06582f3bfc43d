// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/paper-review/internal/httputil"
	"github.com/pdiddy/paper-review/pkg/types"
)

// HTMLText fetches an alternate HTML rendering of a paper and returns its
// visible text, block elements separated by blank lines. Used as a fallback
// when PDF extraction comes back near-empty.
func HTMLText(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) (string, error) {
	resp, err := httputil.Get(ctx, client, url, cfg, "text/html")
	if err != nil {
		return "", fmt.Errorf("fetching HTML rendering: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer").Remove()

	// ar5iv wraps the paper in an <article>; fall back to <body> otherwise.
	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	var blocks []string
	root.Find("h1, h2, h3, h4, p, li, figcaption").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return "", fmt.Errorf("no text found in HTML rendering at %s", url)
	}
	return strings.Join(blocks, "\n\n"), nil
}
