// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-review CLI.
//
// paper-review automates the mechanical part of reviewing a research paper:
// fetch resolves an identifier to metadata and full text, locate finds the
// paper's code repository, and export writes structured notes to a Notion
// database. The stages run sequentially and share no state; a reasoning
// agent composes them and performs the semantic mapping in between.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "paper-review/0.1"
)

// rootCmd is the base command for the paper-review CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-review",
	Short: "Infrastructure for agent-driven paper review",
	Long: `paper-review provides infrastructure for reviewing research papers. An
external agent drives the review workflow; the CLI handles paper fetching,
repository location, and notes export.

Each stage is a subcommand: fetch resolves an arXiv ID or PDF URL to metadata
and extracted text, locate ranks candidate code repositories for a paper, and
export creates or updates a review page in a Notion database.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-review.yaml or ~/.config/paper-review/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-review")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-review"))
		}
	}

	viper.SetEnvPrefix("PAPER_REVIEW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
