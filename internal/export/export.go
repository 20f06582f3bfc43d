// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes review note pages to a Notion database: property
// mapping onto the target schema, ordered block batching, and a create or
// update path selected by an explicit page identifier. The exporter assumes
// a single writer per page; nothing here guards against interleaved writers.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jomei/notionapi"

	"github.com/pdiddy/paper-review/pkg/types"
)

const defaultBatchSize = 100

// Exporter performs create-or-update calls against the document store.
type Exporter struct {
	client *notionapi.Client
	cfg    types.ExportConfig
}

// New builds an Exporter. A missing API key is an auth failure here, at
// first use, not at program startup.
func New(apiKey string, cfg types.ExportConfig) (*Exporter, error) {
	if apiKey == "" {
		return nil, exportErrorf(KindAuth, "no document-store API key: set NOTION_API_KEY or ~/.config/notion/api_key")
	}
	return &Exporter{
		client: notionapi.NewClient(notionapi.Token(apiKey)),
		cfg:    cfg,
	}, nil
}

// Export creates a new page, or updates an existing one when updatePageID
// is given, and returns the page identifier. Blocks are written as ordered
// sub-batches; the update behavior (replace or append) follows the
// configured mode and is never chosen silently.
func (e *Exporter) Export(ctx context.Context, page types.NotePage, updatePageID string, w io.Writer) (string, error) {
	props, err := MapProperties(page.Properties, w)
	if err != nil {
		return "", classify(err)
	}
	blocks, err := BuildBlocks(page.Blocks)
	if err != nil {
		return "", classify(err)
	}

	if updatePageID != "" {
		pageID, err := normalizePageID(updatePageID)
		if err != nil {
			return "", err
		}
		if err := e.updatePage(ctx, pageID, blocks, w); err != nil {
			return "", classify(err)
		}
		return pageID, nil
	}

	pageID, err := e.createPage(ctx, props, blocks, w)
	if err != nil {
		return "", classify(err)
	}
	return pageID, nil
}

// createPage resolves the target database, creates the page without
// children, then appends the blocks in order.
func (e *Exporter) createPage(ctx context.Context, props notionapi.Properties, blocks []notionapi.Block, w io.Writer) (string, error) {
	dbID, err := e.resolveDatabase(ctx)
	if err != nil {
		return "", err
	}

	created, err := e.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	pageID := string(created.ID)
	fmt.Fprintf(w, "created page %s\n", pageID)

	if err := e.appendBlocks(ctx, pageID, blocks, w); err != nil {
		return "", err
	}
	return pageID, nil
}

// updatePage writes blocks to an existing page. In replace mode the page's
// current children are deleted first; in append mode the new blocks follow
// the existing ones.
func (e *Exporter) updatePage(ctx context.Context, pageID string, blocks []notionapi.Block, w io.Writer) error {
	if e.cfg.Mode == types.UpdateReplace {
		if err := e.deleteChildren(ctx, pageID, w); err != nil {
			return err
		}
	}
	return e.appendBlocks(ctx, pageID, blocks, w)
}

// appendBlocks submits the blocks as sequential ordered sub-batches.
func (e *Exporter) appendBlocks(ctx context.Context, pageID string, blocks []notionapi.Block, w io.Writer) error {
	batches := SplitBatches(blocks, e.cfg.BatchSize)
	for i, batch := range batches {
		_, err := e.client.Block.AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
			Children: batch,
		})
		if err != nil {
			return fmt.Errorf("appending batch %d/%d: %w", i+1, len(batches), err)
		}
	}
	fmt.Fprintf(w, "wrote %d block(s) in %d batch(es)\n", len(blocks), len(batches))
	return nil
}

// deleteChildren removes all existing child blocks from the page, paging
// through the block list.
func (e *Exporter) deleteChildren(ctx context.Context, pageID string, w io.Writer) error {
	deleted := 0
	var cursor notionapi.Cursor
	for {
		resp, err := e.client.Block.GetChildren(ctx, notionapi.BlockID(pageID), &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return fmt.Errorf("listing existing blocks: %w", err)
		}
		for _, block := range resp.Results {
			if _, err := e.client.Block.Delete(ctx, block.GetID()); err != nil {
				return fmt.Errorf("deleting block %s: %w", block.GetID(), err)
			}
			deleted++
		}
		if !resp.HasMore {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
	if deleted > 0 {
		fmt.Fprintf(w, "replaced %d existing block(s)\n", deleted)
	}
	return nil
}

// resolveDatabase returns the target database ID: the configured ID when
// set, otherwise a find-by-title lookup. Zero or ambiguous matches fail
// with a target error; callers disambiguate with an explicit ID.
func (e *Exporter) resolveDatabase(ctx context.Context) (string, error) {
	if e.cfg.DatabaseID != "" {
		return e.cfg.DatabaseID, nil
	}
	if e.cfg.DatabaseName == "" {
		return "", exportErrorf(KindTarget, "no target database: provide a database ID or name")
	}

	var matches []string
	var cursor notionapi.Cursor
	for {
		resp, err := e.client.Search.Do(ctx, &notionapi.SearchRequest{
			Query:       e.cfg.DatabaseName,
			StartCursor: cursor,
			Filter: notionapi.SearchFilter{
				Value:    "database",
				Property: "object",
			},
		})
		if err != nil {
			return "", fmt.Errorf("searching for database %q: %w", e.cfg.DatabaseName, err)
		}
		for _, obj := range resp.Results {
			db, ok := obj.(*notionapi.Database)
			if !ok {
				continue
			}
			if databaseTitle(db) == e.cfg.DatabaseName {
				matches = append(matches, string(db.ID))
			}
		}
		if !resp.HasMore {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}

	switch len(matches) {
	case 0:
		return "", exportErrorf(KindTarget, "database %q not found", e.cfg.DatabaseName)
	case 1:
		return matches[0], nil
	default:
		return "", exportErrorf(KindTarget, "database name %q is ambiguous (%d matches); pass an explicit ID", e.cfg.DatabaseName, len(matches))
	}
}

func databaseTitle(db *notionapi.Database) string {
	var b strings.Builder
	for _, rt := range db.Title {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}

// normalizePageID validates a page identifier and returns its canonical
// dashed form. The API accepts both dashed and bare-hex forms; anything
// else is a target error, never guessed at.
func normalizePageID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", exportErrorf(KindTarget, "invalid page ID %q: %v", id, err)
	}
	return parsed.String(), nil
}
