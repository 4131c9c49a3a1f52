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

import "context"

// Provider family names. Configuration order is significant: when the
// caller selects ProviderAll, clients are built (and multi-provider
// results later merged) in this order.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderAll    = "all"
)

// ProviderOrder is the canonical configuration order for multi-provider
// runs. Merging depends on this order, never on response arrival order.
var ProviderOrder = []string{ProviderOpenAI, ProviderGemini, ProviderClaude}

type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// Client defines the standard interface for any LLM backend.
type Client interface {
	// Name returns the provider family name ("openai", "gemini", "claude").
	Name() string
	// Generate issues exactly one chat completion request. No retries.
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// VisionDescriber is the optional capability for backends that accept
// image input. The file analyzer checks for it with a type assertion
// and degrades gracefully when the routed client does not implement it.
type VisionDescriber interface {
	DescribeImage(ctx context.Context, mimeType string, data []byte, prompt string) (string, error)
}
