// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials with a documented precedence:
// environment variable first, then a fixed key-file path, then an explicit
// configuration value. An empty result is not an error here; each stage
// decides whether a missing credential is fatal at first use.
package secrets

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve returns the first non-empty credential among the envVar value,
// the trimmed contents of filePath, and configValue. A missing or
// unreadable file is treated as absent, not as an error.
func Resolve(envVar, filePath, configValue string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if filePath != "" {
		if data, err := os.ReadFile(filePath); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				return v
			}
		}
	}
	return strings.TrimSpace(configValue)
}

// NotionKeyFile is the fixed key-file location for the document-store API key.
func NotionKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "notion", "api_key")
}
