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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/smartcase/services/llm"
)

// formatSwitchingClient answers the plain and bdd prompts differently so
// one engine can serve both export passes.
type formatSwitchingClient struct {
	name string
}

func (f *formatSwitchingClient) Name() string { return f.name }

func (f *formatSwitchingClient) Generate(_ context.Context, prompt string, _ llm.GenerationParams) (string, error) {
	if strings.Contains(prompt, "Gherkin") {
		return `[{"feature": "Login", "scenario": "Valid credentials",
		          "given": ["a registered user on the login page"],
		          "when": ["they submit valid credentials"],
		          "then": ["they land on the dashboard"]}]`, nil
	}
	return `[{"id": 1, "title": "Valid login", "description": "Happy path",
	          "preconditions": "Account exists", "steps": ["Open login page", "Submit credentials"],
	          "expected": "Dashboard is shown", "type": "positive"}]`, nil
}

func TestExportToMarkdownWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	e := NewWithClients([]llm.Client{&formatSwitchingClient{name: llm.ProviderOpenAI}}, nil, nil)

	paths, err := e.ExportToMarkdown(context.Background(), "As a user I want to log in", dir, "login", GenerateOptions{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(paths.PlainEnglish), "login_plain_"))
	assert.True(t, strings.HasPrefix(filepath.Base(paths.BDD), "login_bdd_"))

	plain, err := os.ReadFile(paths.PlainEnglish)
	require.NoError(t, err)
	assert.Contains(t, string(plain), "# Test Cases - Plain English Format")
	assert.Contains(t, string(plain), "## Test Case 1: Valid login")
	assert.Contains(t, string(plain), "**User Story:** As a user I want to log in")

	bdd, err := os.ReadFile(paths.BDD)
	require.NoError(t, err)
	assert.Contains(t, string(bdd), "```gherkin")
	assert.Contains(t, string(bdd), "Scenario: Valid credentials")
	assert.Contains(t, string(bdd), "  Then they land on the dashboard")
}

func TestExportToMarkdownDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	e := NewWithClients([]llm.Client{&formatSwitchingClient{name: llm.ProviderOpenAI}}, nil, nil)

	paths, err := e.ExportToMarkdown(context.Background(), "story", dir, "", GenerateOptions{})
	require.NoError(t, err)

	// Missing directories are created; empty prefix falls back.
	assert.True(t, strings.HasPrefix(filepath.Base(paths.PlainEnglish), "test_cases_plain_"))
	_, err = os.Stat(paths.BDD)
	assert.NoError(t, err)
}

func TestRenderPlainMarkdownFallbacks(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []TestCase{{
		Steps:    []string{"do the thing"},
		Provider: "gemini",
	}}

	doc := renderPlainMarkdown(cases, "story", now)

	assert.Contains(t, doc, "**Generated on:** 2025-06-01 12:00:00")
	assert.Contains(t, doc, "## Test Case 1: Untitled")
	assert.Contains(t, doc, "**Description:** No description provided")
	assert.Contains(t, doc, "**Preconditions:** None")
	assert.Contains(t, doc, "**Provider:** gemini")
	assert.Contains(t, doc, "1. do the thing")
	assert.Contains(t, doc, "**Expected Result:** Not specified")
}

func TestRenderBDDMarkdownClauses(t *testing.T) {
	now := time.Now()
	scenarios := []BDDScenario{{
		Feature:  "Checkout",
		Scenario: "Declined card",
		Given:    []string{"a cart with items", "a declined card on file"},
		When:     []string{"the user pays"},
		Then:     []string{"the payment is rejected", "the cart is preserved"},
	}}

	doc := renderBDDMarkdown(scenarios, "story", now)

	assert.Contains(t, doc, "## Scenario 1: Declined card")
	assert.Contains(t, doc, "Feature: Checkout")
	assert.Contains(t, doc, "  Given a cart with items\n  Given a declined card on file\n")
	assert.Contains(t, doc, "  When the user pays\n")
	assert.Contains(t, doc, "  Then the payment is rejected\n  Then the cart is preserved\n")
}
