// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// BlockType enumerates the closed set of content block types a note page
// may contain.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockCode      BlockType = "code"
	BlockEquation  BlockType = "equation"
	BlockBullet    BlockType = "bullet"
)

// Span is one styled run of text inside a paragraph or bullet block.
type Span struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Code   bool   `json:"code,omitempty"`
}

// Block is one typed unit of structured page content. Which fields apply
// depends on Type:
//
//	heading    Level (1-3) and Text
//	paragraph  Spans, or Text as a single unstyled span
//	code       Text and Language
//	equation   Expression (LaTeX)
//	bullet     Spans, or Text as a single unstyled span
type Block struct {
	Type       BlockType `json:"type"`
	Level      int       `json:"level,omitempty"`
	Text       string    `json:"text,omitempty"`
	Spans      []Span    `json:"spans,omitempty"`
	Language   string    `json:"language,omitempty"`
	Expression string    `json:"expression,omitempty"`
}

// Validate checks that the block uses a known type and carries the fields
// that type requires.
func (b Block) Validate() error {
	switch b.Type {
	case BlockHeading:
		if b.Level < 1 || b.Level > 3 {
			return fmt.Errorf("heading level must be 1-3, got %d", b.Level)
		}
		if b.Text == "" {
			return fmt.Errorf("heading block requires text")
		}
	case BlockParagraph, BlockBullet:
		if b.Text == "" && len(b.Spans) == 0 {
			return fmt.Errorf("%s block requires text or spans", b.Type)
		}
	case BlockCode:
		if b.Text == "" {
			return fmt.Errorf("code block requires text")
		}
	case BlockEquation:
		if b.Expression == "" {
			return fmt.Errorf("equation block requires an expression")
		}
	default:
		return fmt.Errorf("unknown block type %q", b.Type)
	}
	return nil
}

// NotePage is the unit submitted to the document store: a property mapping
// plus an ordered sequence of content blocks. Block order is preserved
// exactly as submitted, across sub-batch splits.
type NotePage struct {
	Properties map[string]any `json:"properties"`
	Blocks     []Block        `json:"blocks"`
}
