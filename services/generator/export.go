// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportPaths holds the two files written by one export call.
type ExportPaths struct {
	PlainEnglish string `json:"plain_english"`
	BDD          string `json:"bdd"`
}

// ExportToMarkdown generates both artifact formats for the story (two
// generation calls, one per format) and writes each to a timestamped
// markdown file under outputDir, creating the directory when absent.
// Artifacts are written exactly once; there is no versioning or
// persistence beyond these two files.
func (e *Engine) ExportToMarkdown(ctx context.Context, story, outputDir, filenamePrefix string, opts GenerateOptions) (ExportPaths, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if filenamePrefix == "" {
		filenamePrefix = "test_cases"
	}

	plainBatch, err := e.GenerateTestCases(ctx, story, FormatPlain, opts)
	if err != nil {
		return ExportPaths{}, err
	}
	bddBatch, err := e.GenerateTestCases(ctx, story, FormatBDD, opts)
	if err != nil {
		return ExportPaths{}, err
	}

	now := time.Now()
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return ExportPaths{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := now.Format("20060102_150405")
	paths := ExportPaths{
		PlainEnglish: filepath.Join(outputDir, fmt.Sprintf("%s_plain_%s.md", filenamePrefix, stamp)),
		BDD:          filepath.Join(outputDir, fmt.Sprintf("%s_bdd_%s.md", filenamePrefix, stamp)),
	}

	if err := os.WriteFile(paths.PlainEnglish, []byte(renderPlainMarkdown(plainBatch.Cases, story, now)), 0640); err != nil {
		return ExportPaths{}, fmt.Errorf("failed to write plain-English export: %w", err)
	}
	if err := os.WriteFile(paths.BDD, []byte(renderBDDMarkdown(bddBatch.Scenarios, story, now)), 0640); err != nil {
		return ExportPaths{}, fmt.Errorf("failed to write BDD export: %w", err)
	}
	e.logger.Info("Exported test cases", "plain", paths.PlainEnglish, "bdd", paths.BDD)
	return paths, nil
}
