// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"github.com/jomei/notionapi"

	"github.com/pdiddy/paper-review/pkg/types"
)

// BuildBlocks validates and converts the typed content blocks into API
// block objects, preserving order exactly. A malformed block is a schema
// error naming its index.
func BuildBlocks(blocks []types.Block) ([]notionapi.Block, error) {
	out := make([]notionapi.Block, 0, len(blocks))
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			return nil, exportErrorf(KindSchema, "block %d: %v", i, err)
		}
		out = append(out, buildBlock(b))
	}
	return out, nil
}

func buildBlock(b types.Block) notionapi.Block {
	switch b.Type {
	case types.BlockHeading:
		heading := notionapi.Heading{RichText: []notionapi.RichText{plainText(b.Text)}}
		switch b.Level {
		case 1:
			return &notionapi.Heading1Block{
				BasicBlock: basicBlock(notionapi.BlockTypeHeading1),
				Heading1:   heading,
			}
		case 2:
			return &notionapi.Heading2Block{
				BasicBlock: basicBlock(notionapi.BlockTypeHeading2),
				Heading2:   heading,
			}
		default:
			return &notionapi.Heading3Block{
				BasicBlock: basicBlock(notionapi.BlockTypeHeading3),
				Heading3:   heading,
			}
		}
	case types.BlockCode:
		return &notionapi.CodeBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeCode),
			Code: notionapi.Code{
				RichText: []notionapi.RichText{plainText(b.Text)},
				Language: codeLanguage(b.Language),
			},
		}
	case types.BlockEquation:
		return &notionapi.EquationBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeEquation),
			Equation:   notionapi.Equation{Expression: b.Expression},
		}
	case types.BlockBullet:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basicBlock(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: spanText(b)},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basicBlock(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: spanText(b)},
		}
	}
}

func basicBlock(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: t}
}

// spanText builds the rich text runs for a paragraph or bullet block:
// styled spans when given, otherwise the plain text as a single run.
func spanText(b types.Block) []notionapi.RichText {
	if len(b.Spans) == 0 {
		return []notionapi.RichText{plainText(b.Text)}
	}
	out := make([]notionapi.RichText, len(b.Spans))
	for i, span := range b.Spans {
		rt := plainText(span.Text)
		if span.Bold || span.Italic || span.Code {
			rt.Annotations = &notionapi.Annotations{
				Bold:   span.Bold,
				Italic: span.Italic,
				Code:   span.Code,
			}
		}
		out[i] = rt
	}
	return out
}

// codeLanguage maps a language tag onto the API's accepted set; anything
// unrecognized degrades to "plain text" instead of failing the block.
func codeLanguage(lang string) string {
	if lang == "" {
		return "plain text"
	}
	if knownLanguages[lang] {
		return lang
	}
	return "plain text"
}

var knownLanguages = map[string]bool{
	"bash": true, "c": true, "c++": true, "c#": true, "css": true,
	"go": true, "html": true, "java": true, "javascript": true,
	"json": true, "julia": true, "kotlin": true, "latex": true,
	"lua": true, "markdown": true, "matlab": true, "ocaml": true,
	"perl": true, "php": true, "plain text": true, "python": true,
	"r": true, "ruby": true, "rust": true, "scala": true, "shell": true,
	"sql": true, "swift": true, "typescript": true, "yaml": true,
}

// SplitBatches splits blocks into ordered sub-batches of at most size,
// preserving block order across the split. The document API caps one
// append call at 100 blocks.
func SplitBatches(blocks []notionapi.Block, size int) [][]notionapi.Block {
	if size <= 0 {
		size = defaultBatchSize
	}
	var batches [][]notionapi.Block
	for start := 0; start < len(blocks); start += size {
		end := min(start+size, len(blocks))
		batches = append(batches, blocks[start:end])
	}
	return batches
}
