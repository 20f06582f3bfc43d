// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-review/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the paper fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxTextChars caps the extracted text length; longer text is truncated
	// with an explicit marker (default 100000).
	MaxTextChars int `json:"max_text_chars" yaml:"max_text_chars"`

	// LowConfidenceChars is the threshold below which an extraction is
	// flagged low-confidence and the HTML fallback is attempted (default 500).
	LowConfidenceChars int `json:"low_confidence_chars" yaml:"low_confidence_chars"`

	// PapersDir, when set, enables the on-disk paper layout: PDFs under
	// raw/ and YAML metadata sidecars under metadata/. An existing PDF
	// skips the download. Empty means fully transient operation.
	PapersDir string `json:"papers_dir,omitempty" yaml:"papers_dir,omitempty"`
}

// LocateConfig holds settings for the repository locate stage.
type LocateConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxSearchResults is the per-query cap on search API results (default 5).
	MaxSearchResults int `json:"max_search_results" yaml:"max_search_results"`

	// GitHubToken is an optional token for higher search rate limits.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"`
}

// UpdateMode selects how an existing page's blocks are written.
type UpdateMode string

const (
	// UpdateReplace deletes the page's existing blocks before appending.
	UpdateReplace UpdateMode = "replace"

	// UpdateAppend appends after the page's existing blocks.
	UpdateAppend UpdateMode = "append"
)

// ExportConfig holds settings for the notes export stage.
type ExportConfig struct {
	// DatabaseID is the target container ID. When set it overrides name lookup.
	DatabaseID string `json:"database_id,omitempty" yaml:"database_id,omitempty"`

	// DatabaseName is the container title to resolve when DatabaseID is empty.
	// Zero or ambiguous matches fail the export.
	DatabaseName string `json:"database_name,omitempty" yaml:"database_name,omitempty"`

	// Mode selects replace or append behavior on the update path. The choice
	// is always explicit; there is no silent default inside the exporter.
	Mode UpdateMode `json:"mode" yaml:"mode"`

	// BatchSize is the maximum blocks per append call (default 100, the
	// document API's limit).
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}
