// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locate finds candidate code repositories for a paper. Two stages
// feed one ranking: a literal scan of the paper text for repository URLs,
// and a code-hosting search by title. Search-stage failures degrade to zero
// contributed candidates; an empty result is a normal "no repository found"
// outcome, not an error.
package locate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/paper-review/pkg/types"
)

// LocateError reports unreadable local text input, the only hard failure
// the locate operation can surface.
type LocateError struct {
	Path string
	Err  error
}

func (e *LocateError) Error() string {
	return fmt.Sprintf("reading text input %s: %v", e.Path, e.Err)
}

func (e *LocateError) Unwrap() error { return e.Err }

// ReadTextFile loads a paper-text file for scanning. Failures come back as
// a *LocateError.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LocateError{Path: path, Err: err}
	}
	return string(data), nil
}

// Locator runs the two-stage repository search.
type Locator struct {
	Searchers []Searcher
	Config    types.LocateConfig
}

// New builds a Locator with the GitHub search stage.
func New(cfg types.LocateConfig) *Locator {
	return &Locator{
		Searchers: []Searcher{NewGitHubSearcher(cfg)},
		Config:    cfg,
	}
}

// Locate returns the ranked candidate list for a paper. The text scan runs
// first and its candidates always lead the result; search queries (title,
// then title plus first author's last name) contribute candidates for URLs
// not already seen. Searcher errors are warnings on w, never failures. The
// caller takes the top candidate as the chosen repository; an empty slice
// means no repository was found.
func (l *Locator) Locate(ctx context.Context, title, authors, text string, w io.Writer) []types.RepoCandidate {
	candidates := ScanText(text)

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c.URL] = true
	}

	for _, query := range buildQueries(title, authors) {
		for _, s := range l.Searchers {
			results, err := s.Search(ctx, query, l.Config)
			if err != nil {
				fmt.Fprintf(w, "warning: %s search failed: %v\n", s.Name(), err)
				continue
			}
			for _, r := range results {
				if seen[r.URL] {
					continue
				}
				seen[r.URL] = true
				candidates = append(candidates, r)
			}
		}
	}

	return Rank(candidates, title)
}

// buildQueries derives the search-stage query strings: the title alone,
// then the title plus the first author's last name.
func buildQueries(title, authors string) []string {
	if title == "" {
		return nil
	}
	queries := []string{title}
	if last := firstAuthorLastName(authors); last != "" {
		queries = append(queries, title+" "+last)
	}
	return queries
}

// firstAuthorLastName pulls the last name of the first author from a
// comma-separated author list.
func firstAuthorLastName(authors string) string {
	first, _, _ := strings.Cut(authors, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// FormatJSON writes the candidate list as an indented JSON array to w.
func FormatJSON(candidates []types.RepoCandidate, w io.Writer) error {
	if candidates == nil {
		candidates = []types.RepoCandidate{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}

// FormatTable writes the candidates as a human-readable table to w.
func FormatTable(candidates []types.RepoCandidate, w io.Writer) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No repository found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-10s  %-6s  %s\n",
		"Rank", "Repository", "Source", "Stars", "Description")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, c := range candidates {
		stars := "-"
		if c.Stars != nil {
			stars = fmt.Sprintf("%d", *c.Stars)
		}
		desc := c.Description
		if r := []rune(desc); len(r) > 40 {
			desc = string(r[:37]) + "..."
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-10s  %-6s  %s\n",
			i+1, c.URL, c.Source, stars, desc)
	}
	fmt.Fprintf(w, "\n%d candidate(s)\n", len(candidates))
}
