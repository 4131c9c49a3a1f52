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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCredentialEnv blanks every credential env var so tests control
// resolution entirely through the explicit key map.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, envs := range credentialEnvVars {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
}

func TestResolveCredential_ExplicitMapWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	key := ResolveCredential(ProviderOpenAI, map[string]string{ProviderOpenAI: "explicit-key"})
	assert.Equal(t, "explicit-key", key)
}

func TestResolveCredential_EnvFallbackOrder(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")
	assert.Equal(t, "google-key", ResolveCredential(ProviderGemini, nil))

	// GEMINI_API_KEY takes precedence over GOOGLE_API_KEY.
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	assert.Equal(t, "gemini-key", ResolveCredential(ProviderGemini, nil))
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), "mistral", "some-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestBuildClients_SingleProviderMissingCredential(t *testing.T) {
	clearCredentialEnv(t)
	_, err := BuildClients(context.Background(), ProviderOpenAI, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestBuildClients_SingleProvider(t *testing.T) {
	clearCredentialEnv(t)
	clients, err := BuildClients(context.Background(), ProviderOpenAI,
		map[string]string{ProviderOpenAI: "sk-test"})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, ProviderOpenAI, clients[0].Name())
}

func TestBuildClients_AllWithNoCredentials(t *testing.T) {
	clearCredentialEnv(t)
	_, err := BuildClients(context.Background(), ProviderAll, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoProviderConfigured)
}

func TestBuildClients_AllSkipsUnconfiguredProviders(t *testing.T) {
	clearCredentialEnv(t)
	clients, err := BuildClients(context.Background(), ProviderAll, map[string]string{
		ProviderOpenAI: "sk-test",
		ProviderClaude: "sk-ant-test",
	})
	require.NoError(t, err)
	require.Len(t, clients, 2)

	// Configuration order is openai, gemini, claude; gemini is skipped.
	assert.Equal(t, ProviderOpenAI, clients[0].Name())
	assert.Equal(t, ProviderClaude, clients[1].Name())
}
