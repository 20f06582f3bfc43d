// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locate

import (
	"sort"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/pdiddy/paper-review/pkg/types"
)

// Rank orders candidates into the documented total order:
//
//  1. in-text candidates before all search candidates, in first-appearance order;
//  2. search candidates by descending star count;
//  3. equal stars broken by descending Jaccard bigram similarity of the
//     repository description to the paper title (case-insensitive);
//  4. remaining ties by ascending lexical URL order;
//  5. API result order preserved by the stable sort as a last resort.
//
// The order is deterministic: identical input yields identical output.
func Rank(candidates []types.RepoCandidate, title string) []types.RepoCandidate {
	jaccard := metrics.NewJaccard()

	type entry struct {
		cand types.RepoCandidate
		sim  float64
	}
	entries := make([]entry, len(candidates))
	for i, c := range candidates {
		e := entry{cand: c}
		if c.Source == types.SourceSearch && title != "" && c.Description != "" {
			e.sim = strutil.Similarity(c.Description, title, jaccard)
		}
		entries[i] = e
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.cand.Source != b.cand.Source {
			return a.cand.Source == types.SourcePaperText
		}
		if a.cand.Source == types.SourcePaperText {
			return a.cand.Position < b.cand.Position
		}

		if sa, sb := starCount(a.cand), starCount(b.cand); sa != sb {
			return sa > sb
		}
		if a.sim != b.sim {
			return a.sim > b.sim
		}
		if a.cand.URL != b.cand.URL {
			return a.cand.URL < b.cand.URL
		}
		return false
	})

	ranked := make([]types.RepoCandidate, len(entries))
	for i, e := range entries {
		ranked[i] = e.cand
	}
	return ranked
}

func starCount(c types.RepoCandidate) int {
	if c.Stars == nil {
		return 0
	}
	return *c.Stars
}
