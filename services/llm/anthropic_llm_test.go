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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnthropicTestClient(t *testing.T, handler http.HandlerFunc) *AnthropicClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAnthropicClient("test-key")
	require.NoError(t, err)
	client.baseURL = server.URL
	return client
}

func TestAnthropicGenerate(t *testing.T) {
	var captured anthropicRequest
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(anthropicResponse{
			ID:   "msg_1",
			Type: "message",
			Role: "assistant",
			Content: []anthropicContent{
				{Type: "text", Text: `[{"feature": "x"`},
				{Type: "text", Text: `}]`},
			},
		})
	})

	out, err := client.Generate(context.Background(), "generate scenarios", GenerationParams{})
	require.NoError(t, err)
	// Multiple text blocks are concatenated.
	assert.Equal(t, `[{"feature": "x"}]`, out)
	assert.Equal(t, "You are an expert QA engineer.", captured.System)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, 4096, captured.MaxTokens, "default max_tokens applies when unset")
}

func TestAnthropicGenerateParams(t *testing.T) {
	var captured anthropicRequest
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: "ok"}},
		})
	})

	temp := float32(0.2)
	maxTokens := 512
	_, err := client.Generate(context.Background(), "p", GenerationParams{
		Temperature: &temp,
		MaxTokens:   &maxTokens,
		Stop:        []string{"END"},
	})
	require.NoError(t, err)
	require.NotNil(t, captured.Temperature)
	assert.InDelta(t, 0.2, float64(*captured.Temperature), 1e-6)
	assert.Equal(t, 512, captured.MaxTokens)
	assert.Equal(t, []string{"END"}, captured.StopSeqs)
}

func TestAnthropicGenerateHTTPError(t *testing.T) {
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	})

	_, err := client.Generate(context.Background(), "p", GenerationParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestAnthropicGenerateEmptyContent(t *testing.T) {
	client := newAnthropicTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{Content: []anthropicContent{}})
	})

	_, err := client.Generate(context.Background(), "p", GenerationParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content")
}

func TestNewAnthropicClientRequiresKey(t *testing.T) {
	_, err := NewAnthropicClient("")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestAnthropicModelOverride(t *testing.T) {
	t.Setenv("CLAUDE_MODEL", "claude-test-model")
	client, err := NewAnthropicClient("k")
	require.NoError(t, err)
	assert.Equal(t, "claude-test-model", client.model)
}
