// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiClient wraps the langchaingo Google AI backend. Gemini is the
// preferred provider for visual content, so this client also implements
// VisionDescriber.
type GeminiClient struct {
	model llms.Model
	name  string
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini (set GOOGLE_API_KEY)", ErrMissingCredential)
	}
	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = "gemini-2.5-flash"
		slog.Debug("GEMINI_MODEL not set, defaulting to gemini-2.5-flash")
	}
	slog.Info("Initializing Gemini client", "model", modelName)
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiClient{model: model, name: modelName}, nil
}

func (g *GeminiClient) Name() string { return ProviderGemini }

// Generate implements the Client interface
func (g *GeminiClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	slog.Debug("Generating text via Gemini", "model", g.name)
	opts := callOptions(params)
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, opts...)
	if err != nil {
		slog.Error("Gemini API call failed", "error", err)
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}
	return out, nil
}

// DescribeImage implements the VisionDescriber interface. The image is
// sent inline as a binary part ahead of the instruction text.
func (g *GeminiClient) DescribeImage(ctx context.Context, mimeType string, data []byte, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, data),
				llms.TextPart(prompt),
			},
		},
	}
	resp, err := g.model.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("Gemini vision call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("Gemini returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func callOptions(params GenerationParams) []llms.CallOption {
	var opts []llms.CallOption
	if params.Temperature != nil {
		opts = append(opts, llms.WithTemperature(float64(*params.Temperature)))
	}
	if params.TopP != nil {
		opts = append(opts, llms.WithTopP(float64(*params.TopP)))
	}
	if params.MaxTokens != nil {
		opts = append(opts, llms.WithMaxTokens(*params.MaxTokens))
	}
	if len(params.Stop) > 0 {
		opts = append(opts, llms.WithStopWords(params.Stop))
	}
	return opts
}
