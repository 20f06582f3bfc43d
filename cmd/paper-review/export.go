// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-review/internal/export"
	"github.com/pdiddy/paper-review/internal/secrets"
	"github.com/pdiddy/paper-review/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write review notes to the Notion database",
	Long: `Export reads a property map and an ordered block array from JSON files and
creates a page in the papers database, or updates an existing page when
--update is given. Blocks are written in ordered batches of at most 100. The
update behavior is explicit: --mode replace deletes the page's existing
blocks first, --mode append writes after them.

The API key is read from NOTION_API_KEY, then ~/.config/notion/api_key, then
the notion_api_key config entry; a missing key fails the export, not startup.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("properties", "", "JSON file with the page property map (required)")
	exportCmd.Flags().String("blocks", "", "JSON file with the ordered block array (required)")
	exportCmd.Flags().String("update", "", "update this existing page instead of creating one")
	exportCmd.Flags().String("db", "", "target database ID (overrides name lookup)")
	exportCmd.Flags().String("db-name", "", "target database title for find-by-title lookup")
	exportCmd.Flags().String("mode", "replace", "update behavior: replace or append")
	exportCmd.MarkFlagRequired("properties")
	exportCmd.MarkFlagRequired("blocks")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	propsPath, _ := cmd.Flags().GetString("properties")
	blocksPath, _ := cmd.Flags().GetString("blocks")
	update, _ := cmd.Flags().GetString("update")
	db, _ := cmd.Flags().GetString("db")
	dbName, _ := cmd.Flags().GetString("db-name")
	mode, _ := cmd.Flags().GetString("mode")

	updateMode := types.UpdateMode(mode)
	if updateMode != types.UpdateReplace && updateMode != types.UpdateAppend {
		return fmt.Errorf("invalid --mode %q: use replace or append", mode)
	}

	var page types.NotePage
	if err := readJSON(propsPath, &page.Properties); err != nil {
		return err
	}
	if err := readJSON(blocksPath, &page.Blocks); err != nil {
		return err
	}

	if db == "" {
		db = viper.GetString("database_id")
	}
	if dbName == "" {
		dbName = viper.GetString("database_name")
	}

	cfg := types.ExportConfig{
		DatabaseID:   db,
		DatabaseName: dbName,
		Mode:         updateMode,
	}

	apiKey := secrets.Resolve("NOTION_API_KEY", secrets.NotionKeyFile(), viper.GetString("notion_api_key"))
	exporter, err := export.New(apiKey, cfg)
	if err != nil {
		return err
	}

	pageID, err := exporter.Export(cmd.Context(), page, update, os.Stderr)
	if err != nil {
		return err
	}

	action := "created"
	if update != "" {
		if updateMode == types.UpdateReplace {
			action = "replaced"
		} else {
			action = "appended"
		}
	}
	result := map[string]string{"page_id": pageID, "action": action}
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(result)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
