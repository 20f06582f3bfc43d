// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-review/internal/locate"
	"github.com/pdiddy/paper-review/internal/secrets"
	"github.com/pdiddy/paper-review/pkg/types"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find the code repository for a paper",
	Long: `Locate produces a ranked list of candidate code repositories for a paper.
Repository URLs cited in the paper text always rank first, in order of
appearance; GitHub search results follow, ordered by stars with deterministic
tiebreaks. Search failures degrade to zero search candidates. An empty result
means no repository was found, which is a normal outcome, not an error.`,
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().String("title", "", "paper title")
	locateCmd.Flags().String("authors", "", "comma-separated author names")
	locateCmd.Flags().String("text", "", "paper text to scan for repository links")
	locateCmd.Flags().String("text-file", "", "file containing paper text to scan")
	locateCmd.Flags().StringP("output", "o", "", "output JSON path (default: stdout)")
	locateCmd.Flags().Bool("table", false, "print a human-readable table instead of JSON")
	locateCmd.Flags().Int("max-results", 0, "per-query cap on search API results (default 5)")
	locateCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	authors, _ := cmd.Flags().GetString("authors")
	text, _ := cmd.Flags().GetString("text")
	textFile, _ := cmd.Flags().GetString("text-file")
	output, _ := cmd.Flags().GetString("output")
	table, _ := cmd.Flags().GetBool("table")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	if title == "" && text == "" && textFile == "" {
		return fmt.Errorf("provide --title, --text, or --text-file")
	}

	if textFile != "" {
		fileText, err := locate.ReadTextFile(textFile)
		if err != nil {
			return err
		}
		text += "\n" + fileText
	}

	cfg := types.LocateConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxSearchResults: maxResults,
		GitHubToken:      secrets.Resolve("GITHUB_TOKEN", "", viper.GetString("github_token")),
	}

	candidates := locate.New(cfg).Locate(cmd.Context(), title, authors, text, os.Stderr)

	if table {
		locate.FormatTable(candidates, os.Stdout)
		return nil
	}
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		defer f.Close()
		return locate.FormatJSON(candidates, f)
	}
	return locate.FormatJSON(candidates, os.Stdout)
}
