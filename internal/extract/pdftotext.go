// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// PdftotextExtractor extracts text by running the poppler pdftotext tool.
type PdftotextExtractor struct{}

// Name returns the backend identifier.
func (e *PdftotextExtractor) Name() string { return "pdftotext" }

// Available reports whether pdftotext is on PATH.
func (e *PdftotextExtractor) Available() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

// Extract runs pdftotext with layout preservation and returns its stdout.
func (e *PdftotextExtractor) Extract(pdfPath string) (string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("PDF not found: %w", err)
	}

	cmd := exec.Command("pdftotext", "-layout", pdfPath, "-")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, stderr.String())
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("pdftotext produced empty output for %s", pdfPath)
	}
	return out.String(), nil
}
