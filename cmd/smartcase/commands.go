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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/smartcase/pkg/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// --- Global Command Variables ---
var (
	envFile  string
	logLevel string
	logDir   string

	// generate flags
	story     string
	storyFile string
	format    string
	provider  string
	numCases  int
	files     []string
	inputDir  string
	export    bool
	outputDir string
	prefix    string

	// serve flags
	serveAddr string

	logger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "smartcase",
		Short: "Generate structured test cases from user stories with LLMs",
		Long: `Smartcase turns plain-English user stories into structured test
artifacts: plain-English test cases or BDD/Gherkin scenarios, generated
by one or several LLM providers and optionally grounded in context files
(requirements docs, wireframes, spreadsheets, API samples).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Best-effort .env loading; absence is the normal case.
			_ = godotenv.Load(envFile)
			logger = logging.New(logging.Config{
				Level:   logging.ParseLevel(logLevel),
				LogDir:  logDir,
				Service: "cli",
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Close()
			}
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate test cases or BDD scenarios from a user story",
		RunE:  runGenerate, // Defined in cmd_generate.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the smartcase HTTP API",
		RunE:  runServe, // Defined in cmd_serve.go
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show configured providers and supported context file types",
		RunE:  runStatus, // Defined in cmd_status.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the smartcase version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("smartcase " + version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file with provider credentials")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for JSON log files (disabled when empty)")

	generateCmd.Flags().StringVarP(&story, "story", "s", "", "The user story to generate test cases from")
	generateCmd.Flags().StringVar(&storyFile, "story-file", "", "Read the user story from a file")
	generateCmd.Flags().StringVarP(&format, "format", "f", "plain", "Artifact format: plain or bdd")
	generateCmd.Flags().StringVarP(&provider, "provider", "p", "openai", "LLM provider: openai, gemini, claude, or all")
	generateCmd.Flags().IntVarP(&numCases, "num-cases", "n", -1, "Keep only the first N items (-1 keeps everything)")
	generateCmd.Flags().StringSliceVar(&files, "files", nil, "Context files to analyze alongside the story")
	generateCmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory whose supported files are added as context (defaults to $SMARTCASE_INPUT_DIR)")
	generateCmd.Flags().BoolVar(&export, "export", false, "Export both formats to timestamped markdown files instead of printing")
	generateCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "test_cases", "Directory for markdown exports")
	generateCmd.Flags().StringVar(&prefix, "prefix", "test_cases", "Filename prefix for markdown exports")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to $APP_HOST:$APP_PORT, then :8080)")
	serveCmd.Flags().StringVarP(&provider, "provider", "p", "all", "LLM provider selection for the server")
	serveCmd.Flags().StringVar(&inputDir, "input-dir", "", "Watched context directory (defaults to $SMARTCASE_INPUT_DIR)")

	rootCmd.AddCommand(generateCmd, serveCmd, statusCmd, versionCmd)
}
