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
	"strings"
)

// credentialEnvVars maps each provider family to the environment
// variables consulted, in order, when no explicit key is supplied.
var credentialEnvVars = map[string][]string{
	ProviderOpenAI: {"OPENAI_API_KEY"},
	ProviderGemini: {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	ProviderClaude: {"CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
}

// ResolveCredential returns the API key for a provider: the explicit map
// wins, then the provider's conventional environment variables.
func ResolveCredential(provider string, apiKeys map[string]string) string {
	if key, ok := apiKeys[provider]; ok && key != "" {
		return key
	}
	for _, env := range credentialEnvVars[provider] {
		if key := strings.TrimSpace(os.Getenv(env)); key != "" {
			return key
		}
	}
	return ""
}

// NewClient constructs the client for one provider family.
func NewClient(ctx context.Context, provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey)
	case ProviderClaude:
		return NewAnthropicClient(apiKey)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}

// BuildClients resolves a provider selection into an ordered client list.
//
// A single-provider selection requires that provider's credential and
// fails with ErrMissingCredential when it cannot be resolved. The "all"
// selection configures every provider family whose credential resolves,
// in ProviderOrder, skipping (with a warning) families whose key is
// absent or whose client fails to initialize; it fails with
// ErrNoProviderConfigured when none survive.
func BuildClients(ctx context.Context, selection string, apiKeys map[string]string) ([]Client, error) {
	if selection != ProviderAll {
		key := ResolveCredential(selection, apiKeys)
		client, err := NewClient(ctx, selection, key)
		if err != nil {
			return nil, err
		}
		return []Client{client}, nil
	}

	var clients []Client
	for _, provider := range ProviderOrder {
		key := ResolveCredential(provider, apiKeys)
		if key == "" {
			slog.Warn("Skipping provider, no credential found", "provider", provider)
			continue
		}
		client, err := NewClient(ctx, provider, key)
		if err != nil {
			slog.Warn("Skipping provider, initialization failed", "provider", provider, "error", err)
			continue
		}
		clients = append(clients, client)
	}
	if len(clients) == 0 {
		return nil, ErrNoProviderConfigured
	}
	return clients, nil
}
