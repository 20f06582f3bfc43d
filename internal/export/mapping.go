// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/jomei/notionapi"
)

// richTextLimit is the document store's per-field rich text length limit.
const richTextLimit = 2000

// MapProperties converts a caller-supplied property map onto the target
// schema's typed fields. Unknown keys are dropped with a warning rather
// than failing, to tolerate schema drift; dropping is idempotent. A known
// key with an unusable value is a schema error.
func MapProperties(props map[string]any, w io.Writer) (notionapi.Properties, error) {
	mapped := notionapi.Properties{}

	for key, value := range props {
		switch key {
		case "Name":
			s, err := asString(key, value)
			if err != nil {
				return nil, err
			}
			mapped[key] = notionapi.TitleProperty{
				Title: []notionapi.RichText{plainText(s)},
			}
		case "Authors", "Summary":
			s, err := asString(key, value)
			if err != nil {
				return nil, err
			}
			if r := []rune(s); len(r) > richTextLimit {
				s = string(r[:richTextLimit])
			}
			mapped[key] = notionapi.RichTextProperty{
				RichText: []notionapi.RichText{plainText(s)},
			}
		case "Year":
			n, err := asNumber(key, value)
			if err != nil {
				return nil, err
			}
			mapped[key] = notionapi.NumberProperty{Number: n}
		case "Tags":
			tags, err := asStringSlice(key, value)
			if err != nil {
				return nil, err
			}
			options := make([]notionapi.Option, len(tags))
			for i, t := range tags {
				options[i] = notionapi.Option{Name: t}
			}
			mapped[key] = notionapi.MultiSelectProperty{MultiSelect: options}
		case "Status":
			s, err := asString(key, value)
			if err != nil {
				return nil, err
			}
			mapped[key] = notionapi.SelectProperty{Select: notionapi.Option{Name: s}}
		case "URL", "Repo":
			s, err := asString(key, value)
			if err != nil {
				return nil, err
			}
			mapped[key] = notionapi.URLProperty{URL: s}
		default:
			fmt.Fprintf(w, "warning: dropping unknown property %q\n", key)
		}
	}
	return mapped, nil
}

func plainText(s string) notionapi.RichText {
	return notionapi.RichText{Text: &notionapi.Text{Content: s}}
}

func asString(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", exportErrorf(KindSchema, "property %q: expected string, got %T", key, value)
	}
	return s, nil
}

// asNumber accepts the numeric shapes JSON decoding produces.
func asNumber(key string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, exportErrorf(KindSchema, "property %q: expected number, got %T", key, value)
	}
}

func asStringSlice(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, exportErrorf(KindSchema, "property %q: expected string list, got %T element", key, item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, exportErrorf(KindSchema, "property %q: expected string list, got %T", key, value)
	}
}
