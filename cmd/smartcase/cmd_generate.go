// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smartcase/pkg/ux"
	"github.com/AleutianAI/smartcase/services/generator"
	"github.com/AleutianAI/smartcase/services/webapp"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	text, err := resolveStory()
	if err != nil {
		return err
	}

	parsedFormat, err := generator.ParseFormat(format)
	if err != nil {
		return err
	}

	engine, err := generator.New(cmd.Context(), provider, generator.Options{Logger: logger.Slog()})
	if err != nil {
		return err
	}
	ux.Muted("Providers: " + strings.Join(engine.Providers(), ", "))

	contextFiles, err := resolveContextFiles()
	if err != nil {
		return err
	}
	if len(contextFiles) > 0 {
		ux.Muted(fmt.Sprintf("Context files: %d", len(contextFiles)))
	}

	opts := generator.GenerateOptions{AdditionalFiles: contextFiles}
	if numCases >= 0 {
		n := numCases
		opts.NumCases = &n
	}

	if export {
		paths, err := engine.ExportToMarkdown(cmd.Context(), text, outputDir, prefix, opts)
		if err != nil {
			return err
		}
		ux.Success("Exported test cases")
		ux.KeyValue("plain", paths.PlainEnglish)
		ux.KeyValue("bdd", paths.BDD)
		return nil
	}

	batch, err := engine.GenerateTestCases(cmd.Context(), text, parsedFormat, opts)
	if err != nil {
		return err
	}
	printBatch(batch)
	return nil
}

// resolveStory picks the story from --story, --story-file, or, on a
// terminal, an interactive prompt.
func resolveStory() (string, error) {
	if story != "" {
		return story, nil
	}
	if storyFile != "" {
		raw, err := os.ReadFile(storyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read story file: %w", err)
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return "", fmt.Errorf("story file %s is empty", storyFile)
		}
		return text, nil
	}
	if ux.Interactive() {
		return ux.PromptStory()
	}
	return "", fmt.Errorf("no user story given: pass --story or --story-file")
}

// resolveContextFiles merges --files with the input directory listing.
// Directory discovery happens here at the boundary, never in the core.
func resolveContextFiles() ([]string, error) {
	contextFiles := append([]string(nil), files...)

	dir := inputDir
	if dir == "" {
		dir = os.Getenv("SMARTCASE_INPUT_DIR")
	}
	if dir != "" {
		discovered, err := webapp.DiscoverContextFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list input directory %s: %w", dir, err)
		}
		contextFiles = append(contextFiles, discovered...)
	}
	return contextFiles, nil
}

func printBatch(batch *generator.Batch) {
	if batch.Format == generator.FormatPlain {
		ux.Title(fmt.Sprintf("Test Cases (%d)", len(batch.Cases)))
		for _, tc := range batch.Cases {
			fmt.Println()
			ux.Title(fmt.Sprintf("%d. %s", tc.ID, tc.Title))
			if tc.Provider != "" {
				ux.KeyValue("provider", tc.Provider)
			}
			ux.KeyValue("type", tc.Type)
			if tc.Preconditions != "" {
				ux.KeyValue("preconditions", tc.Preconditions)
			}
			ux.Info(tc.Description)
			for i, step := range tc.Steps {
				ux.Info(fmt.Sprintf("  %d. %s", i+1, step))
			}
			ux.KeyValue("expected", tc.Expected)
		}
		return
	}

	ux.Title(fmt.Sprintf("BDD Scenarios (%d)", len(batch.Scenarios)))
	for i, sc := range batch.Scenarios {
		fmt.Println()
		ux.Title(fmt.Sprintf("%d. %s", i+1, sc.Scenario))
		ux.KeyValue("feature", sc.Feature)
		if sc.Provider != "" {
			ux.KeyValue("provider", sc.Provider)
		}
		for _, g := range sc.Given {
			ux.Info("Given " + g)
		}
		for _, w := range sc.When {
			ux.Info("When " + w)
		}
		for _, th := range sc.Then {
			ux.Info("Then " + th)
		}
	}
}
