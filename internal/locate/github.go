// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locate

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"

	"github.com/pdiddy/paper-review/internal/httputil"
	"github.com/pdiddy/paper-review/pkg/types"
)

const defaultMaxSearchResults = 5

// Searcher queries a code-hosting search API for candidate repositories.
// The search stage is best-effort: a Searcher error contributes zero
// candidates instead of failing the locate call.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.LocateConfig) ([]types.RepoCandidate, error)
}

// GitHubSearcher queries the GitHub repository search API.
type GitHubSearcher struct {
	Client *github.Client
}

// NewGitHubSearcher builds a searcher with the shared HTTP settings. A
// token raises the unauthenticated search rate limit but is optional.
func NewGitHubSearcher(cfg types.LocateConfig) *GitHubSearcher {
	client := github.NewClient(httputil.NewClient(cfg.HTTPConfig))
	if cfg.GitHubToken != "" {
		client = client.WithAuthToken(cfg.GitHubToken)
	}
	return &GitHubSearcher{Client: client}
}

// Name returns the searcher identifier.
func (s *GitHubSearcher) Name() string { return "github" }

// Search runs a repository search sorted by stars and returns candidates
// tagged with the search source, annotated with star count and description.
func (s *GitHubSearcher) Search(ctx context.Context, query string, cfg types.LocateConfig) ([]types.RepoCandidate, error) {
	maxResults := cfg.MaxSearchResults
	if maxResults <= 0 {
		maxResults = defaultMaxSearchResults
	}

	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: maxResults},
	}

	result, _, err := s.Client.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("GitHub search for %q: %w", query, err)
	}

	var candidates []types.RepoCandidate
	for i, repo := range result.Repositories {
		url := repo.GetHTMLURL()
		if url == "" {
			continue
		}
		stars := repo.GetStargazersCount()
		candidates = append(candidates, types.RepoCandidate{
			URL:         url,
			Source:      types.SourceSearch,
			Stars:       &stars,
			Description: repo.GetDescription(),
			Position:    i,
		})
	}
	return candidates, nil
}
