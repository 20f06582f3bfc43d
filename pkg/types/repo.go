// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-review pipeline:
// PaperRecord (fetch), RepoCandidate (locate), NotePage and Block (export),
// and the per-stage configuration structs.
package types

// CandidateSource identifies where a repository candidate came from.
type CandidateSource string

const (
	// SourcePaperText marks a repository URL found literally in the paper text.
	SourcePaperText CandidateSource = "paper_text"

	// SourceSearch marks a repository returned by a code-hosting search API.
	SourceSearch CandidateSource = "search"
)

// RepoCandidate is one code repository hypothesized to implement a paper.
// Candidates are produced transiently for a single ranking decision; the
// caller takes the top-ranked one and discards the rest.
type RepoCandidate struct {
	// URL is the repository URL.
	URL string `json:"url"`

	// Source records the origin signal. In-text candidates always outrank
	// search candidates, regardless of star count.
	Source CandidateSource `json:"source"`

	// Stars is the reported star count; nil for in-text candidates, where
	// no count is known.
	Stars *int `json:"stars"`

	// Description is the repository description reported by the search API.
	Description string `json:"description"`

	// Position is the zero-based order of first appearance within the
	// candidate's own stage (text scan order or API result order).
	Position int `json:"-"`
}

// Confidence derives a coarse confidence value for the candidate. It is
// computed, never stored: 1.0 for in-text linkage, otherwise a star-scaled
// value capped below every in-text candidate.
func (c RepoCandidate) Confidence() float64 {
	if c.Source == SourcePaperText {
		return 1.0
	}
	stars := 0
	if c.Stars != nil {
		stars = *c.Stars
	}
	switch {
	case stars >= 1000:
		return 0.9
	case stars >= 100:
		return 0.7
	case stars >= 10:
		return 0.5
	default:
		return 0.3
	}
}
