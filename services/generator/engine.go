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
	"log/slog"

	"github.com/AleutianAI/smartcase/services/file_analyzer"
	"github.com/AleutianAI/smartcase/services/llm"
)

// ContextBuilder turns an explicit list of file paths into one combined
// textual context block. The core never scans the working directory
// itself; path discovery belongs to the CLI/web boundary.
type ContextBuilder interface {
	BuildContext(ctx context.Context, paths []string) (string, error)
}

// Engine generates structured test artifacts from user stories. One
// engine holds the ordered provider client list resolved at
// construction; each generation call is otherwise stateless.
type Engine struct {
	clients        []llm.Client
	contextBuilder ContextBuilder
	logger         *slog.Logger
}

// Options configures engine construction.
type Options struct {
	// APIKeys maps provider family names to credentials. Keys absent
	// here are resolved from the conventional environment variables.
	APIKeys map[string]string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// GenerateOptions configures one generation call.
type GenerateOptions struct {
	// NumCases, when set, truncates the parsed/merged list to its first
	// N entries. It is a slice, not a request to the model to produce
	// exactly N; the model is always asked for 5-10. Zero yields an
	// empty list; nil disables truncation.
	NumCases *int

	// AdditionalFiles are context files analyzed and appended to the
	// story before prompting.
	AdditionalFiles []string
}

// New resolves the provider selection ("openai", "gemini", "claude" or
// "all") into an engine. Fails before any network I/O when a selected
// provider's credential is missing or the name is unrecognized.
func New(ctx context.Context, providerSelection string, opts Options) (*Engine, error) {
	clients, err := llm.BuildClients(ctx, providerSelection, opts.APIKeys)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		clients:        clients,
		contextBuilder: file_analyzer.New(clients, logger),
		logger:         logger,
	}, nil
}

// NewWithClients builds an engine around pre-constructed clients and an
// optional context builder. Used by the web layer and by tests.
func NewWithClients(clients []llm.Client, cb ContextBuilder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{clients: clients, contextBuilder: cb, logger: logger}
}

// Providers returns the configured provider names in configuration order.
func (e *Engine) Providers() []string {
	names := make([]string, len(e.clients))
	for i, c := range e.clients {
		names[i] = c.Name()
	}
	return names
}

// GenerateTestCases produces a batch of test cases or BDD scenarios for
// the user story. With one configured provider the call is a
// passthrough; with several, each provider runs sequentially and the
// surviving results are merged (see merge.go).
func (e *Engine) GenerateTestCases(ctx context.Context, story string, format Format, opts GenerateOptions) (*Batch, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}

	fileContext := ""
	if len(opts.AdditionalFiles) > 0 && e.contextBuilder != nil {
		fileContext, err = e.contextBuilder.BuildContext(ctx, opts.AdditionalFiles)
		if err != nil {
			// Per-file failures are absorbed inside the analyzer; an
			// error here means the whole context step failed. Generation
			// proceeds on the story alone.
			e.logger.Warn("file context build failed, continuing without it", "error", err)
			fileContext = ""
		}
	}

	var batch *Batch
	if len(e.clients) == 1 {
		batch, err = e.generateWith(ctx, e.clients[0], story, format, fileContext)
		if err != nil {
			return nil, err
		}
	} else {
		batch, err = e.generateMerged(ctx, story, format, fileContext)
		if err != nil {
			return nil, err
		}
	}

	if opts.NumCases != nil {
		batch.truncate(*opts.NumCases)
	}
	return batch, nil
}

// generateWith runs the structured generation pipeline against one
// provider: build prompt, issue exactly one request, strict-parse with
// the single envelope repair.
func (e *Engine) generateWith(ctx context.Context, client llm.Client, story string, format Format, fileContext string) (*Batch, error) {
	prompt := buildPrompt(story, format, fileContext)
	e.logger.Debug("Requesting generation", "provider", client.Name(), "format", format)

	raw, err := client.Generate(ctx, prompt, llm.GenerationParams{})
	if err != nil {
		return nil, &GenerationError{Provider: client.Name(), Format: format, Err: err}
	}

	batch := &Batch{Format: format}
	switch format {
	case FormatPlain:
		batch.Cases, err = decodeBatch[TestCase](raw)
	case FormatBDD:
		batch.Scenarios, err = decodeBatch[BDDScenario](raw)
	}
	if err != nil {
		return nil, &GenerationError{Provider: client.Name(), Format: format, Err: err}
	}
	e.logger.Info("Generation succeeded", "provider", client.Name(), "format", format, "items", batch.Len())
	return batch, nil
}
