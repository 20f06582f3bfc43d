// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-review/internal/fetch"
	"github.com/pdiddy/paper-review/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url_or_arxiv_id>",
	Short: "Fetch paper metadata and full text",
	Long: `Fetch resolves an arXiv ID, arXiv URL, or direct PDF URL to a paper
record: title, authors, year, abstract, canonical URL, PDF URL, and the
extracted full text. Metadata comes from the arXiv API when available and is
left blank otherwise, never guessed. A near-empty extraction is flagged
low-confidence after trying the alternate HTML rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", "", "output JSON path (default: stdout)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().String("papers-dir", "", "keep the PDF and a metadata sidecar under this directory")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	output, _ := cmd.Flags().GetString("output")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		PapersDir: papersDir,
	}

	record, err := fetch.New(cfg).Fetch(cmd.Context(), args[0], os.Stderr)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	data = append(data, '\n')

	if output != "" {
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", output)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}
