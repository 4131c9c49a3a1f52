// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package file_analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/AleutianAI/smartcase/services/llm"
)

// Analyzer extracts normalized text and metadata from heterogeneous
// files and routes the extracted content to the best configured LLM
// provider for enrichment. Per-file failures never abort a batch: a
// failing file yields an error-tagged Result and analysis continues
// (continue-and-record policy).
type Analyzer struct {
	clients []llm.Client
	byName  map[string]llm.Client
	logger  *slog.Logger
}

// New builds an analyzer over the configured client list. An empty list
// is valid: extraction still runs, enrichment is skipped.
func New(clients []llm.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	byName := make(map[string]llm.Client, len(clients))
	for _, c := range clients {
		byName[c.Name()] = c
	}
	return &Analyzer{clients: clients, byName: byName, logger: logger}
}

// AnalyzeFile produces one Result for one file. It never returns an
// error: missing files, unreadable content, and extractor panics all
// become error-tagged Results.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) Result {
	if _, err := os.Stat(path); err != nil {
		return Result{
			FilePath: path,
			FileType: FileTypeError,
			Error:    "File not found",
			Analysis: "File not found",
			Provider: ProviderNone,
			Metadata: map[string]any{},
		}
	}

	result := a.extract(path)
	if result.FileType == FileTypeError {
		result.Provider = ProviderNone
		result.Analysis = result.Content
		return result
	}

	provider := a.RouteProvider(path)
	result.Provider = provider
	if provider == ProviderNone {
		result.Analysis = result.Summary()
		return result
	}

	enhanced, err := a.enhance(ctx, &result, provider)
	if err != nil {
		a.logger.Warn("LLM enrichment failed, falling back to local summary",
			"file", path, "provider", provider, "error", err)
		enhanced = result.Summary()
	}
	result.Analysis = enhanced
	result.EnhancedAnalysis = enhanced
	return result
}

// extract dispatches on file extension. A panicking extractor (malformed
// PDFs are the usual culprit) is converted into an error-tagged result.
func (a *Analyzer) extract(path string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = errorResult(path, fmt.Sprintf("extraction panic: %v", r))
		}
	}()

	ext := extensionOf(path)
	switch {
	case textExtensions[ext]:
		return extractText(path)
	case ext == ".pdf":
		return extractPDF(path)
	case ext == ".docx" || ext == ".doc":
		return extractDocx(path)
	case ext == ".xlsx" || ext == ".xls" || ext == ".csv":
		return extractSpreadsheet(path)
	case ext == ".json":
		return extractJSON(path)
	case ext == ".xml":
		return extractXML(path)
	case visualExtensions[ext]:
		return extractImage(path)
	case videoExtensions[ext]:
		return extractVideo(path)
	default:
		return extractUnknown(path)
	}
}

// enhance sends the extracted content to the routed provider. Images go
// through the vision path when the client supports it; everything else
// uses a plain-text analysis prompt.
func (a *Analyzer) enhance(ctx context.Context, result *Result, provider string) (string, error) {
	client, ok := a.byName[provider]
	if !ok {
		return result.Summary(), nil
	}

	if result.FileType == FileTypeImage {
		if vd, isVision := client.(llm.VisionDescriber); isVision {
			data, err := os.ReadFile(result.FilePath)
			if err != nil {
				return "", fmt.Errorf("failed to read image for vision analysis: %w", err)
			}
			mimeType := mime.TypeByExtension(extensionOf(result.FilePath))
			if mimeType == "" {
				mimeType = "image/png"
			}
			desc, err := vd.DescribeImage(ctx, mimeType, data, visualAnalysisPrompt(result))
			if err != nil {
				return "", err
			}
			// The visual description also becomes part of the extracted
			// content so the combined context carries it.
			result.Content = result.Content + "\n\nVisual analysis:\n" + desc
			return desc, nil
		}
	}

	prompt := documentAnalysisPrompt(result)
	if result.FileType == FileTypeImage || result.FileType == FileTypeVideo {
		prompt = visualAnalysisPrompt(result)
	}
	return client.Generate(ctx, prompt, llm.GenerationParams{})
}

// AnalyzeFiles analyzes each path in order. One bad file never fails the
// batch; its error-tagged Result is recorded and the loop continues.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, a.AnalyzeFile(ctx, path))
	}
	return results
}

// BuildContext implements the generator's ContextBuilder: analyze all
// paths, then collapse the results into one combined context block.
func (a *Analyzer) BuildContext(ctx context.Context, paths []string) (string, error) {
	return a.GenerateCombinedAnalysis(a.AnalyzeFiles(ctx, paths)), nil
}

// StatusReport describes the analyzer's current capabilities.
type StatusReport struct {
	AvailableProviders      []string `json:"available_providers"`
	VisualAnalysisProvider  string   `json:"visual_analysis_provider"`
	DocumentProviders       []string `json:"document_analysis_providers"`
	SupportedExtensions     []string `json:"supported_extensions"`
	TotalSupportedFormats   int      `json:"total_supported_formats"`
	VisionCapableConfigured bool     `json:"vision_capable_configured"`
}

// Status reports configured providers and routing choices.
func (a *Analyzer) Status() StatusReport {
	report := StatusReport{
		VisualAnalysisProvider: ProviderNone,
		SupportedExtensions:    SupportedExtensions(),
	}
	report.TotalSupportedFormats = len(report.SupportedExtensions)
	for _, c := range a.clients {
		report.AvailableProviders = append(report.AvailableProviders, c.Name())
		if _, ok := c.(llm.VisionDescriber); ok {
			report.VisionCapableConfigured = true
		}
		if c.Name() == llm.ProviderOpenAI || c.Name() == llm.ProviderClaude {
			report.DocumentProviders = append(report.DocumentProviders, c.Name())
		}
	}
	if _, ok := a.byName[llm.ProviderGemini]; ok {
		report.VisualAnalysisProvider = llm.ProviderGemini
	} else if _, ok := a.byName[llm.ProviderOpenAI]; ok {
		report.VisualAnalysisProvider = llm.ProviderOpenAI
	}
	return report
}

func errorResult(path, message string) Result {
	return Result{
		FilePath: path,
		FileType: FileTypeError,
		Content:  message,
		Error:    message,
		Provider: ProviderNone,
		Metadata: map[string]any{},
	}
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func baseName(path string) string { return filepath.Base(path) }
