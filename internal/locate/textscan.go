// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locate

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-review/pkg/types"
)

// repoURLPattern matches code-hosting repository URLs in paper text.
// Papers cite repos with trailing punctuation attached, cleaned up below.
var repoURLPattern = regexp.MustCompile(`https?://github\.com/([A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+)`)

// ScanText extracts repository URLs cited in the paper text. Matches are
// deduplicated with first-appearance order preserved and tagged as in-text
// candidates; their Position is the appearance index.
func ScanText(text string) []types.RepoCandidate {
	matches := repoURLPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool)
	var candidates []types.RepoCandidate
	for _, m := range matches {
		path := strings.TrimRight(m[1], ".,;)")
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		candidates = append(candidates, types.RepoCandidate{
			URL:      "https://github.com/" + path,
			Source:   types.SourcePaperText,
			Position: len(candidates),
		})
	}
	return candidates
}
