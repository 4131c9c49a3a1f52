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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainArrayJSON = `[
  {"id": 1, "title": "Valid login", "description": "Happy path",
   "preconditions": "Account exists", "steps": ["Open page", "Submit"],
   "expected": "Dashboard shown", "type": "positive"},
  {"id": 2, "title": "Wrong password", "description": "Rejection",
   "steps": ["Open page", "Submit bad password"],
   "expected": "Error shown", "type": "negative"}
]`

func TestDecodeBatchStrictArray(t *testing.T) {
	cases, err := decodeBatch[TestCase](plainArrayJSON)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, 1, cases[0].ID)
	assert.Equal(t, "Valid login", cases[0].Title)
	assert.Equal(t, []string{"Open page", "Submit bad password"}, cases[1].Steps)
	assert.Empty(t, cases[1].Preconditions)
}

// An items-envelope response must parse to the same result as the bare
// array it wraps.
func TestDecodeBatchItemsEnvelopeEquivalence(t *testing.T) {
	direct, err := decodeBatch[TestCase](plainArrayJSON)
	require.NoError(t, err)

	wrapped, err := decodeBatch[TestCase](`{"items": ` + plainArrayJSON + `}`)
	require.NoError(t, err)

	assert.Equal(t, direct, wrapped)
}

func TestDecodeBatchEnvelopeWithoutItems(t *testing.T) {
	_, err := decodeBatch[TestCase](`{"results": []}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not match the requested schema")
}

func TestDecodeBatchEnvelopeItemsNotArray(t *testing.T) {
	_, err := decodeBatch[TestCase](`{"items": {"id": 1}}`)
	require.Error(t, err)
}

// Unknown fields fail both the strict pass and the repaired pass; the
// error carries the original strict-pass failure.
func TestDecodeBatchUnknownFieldRejected(t *testing.T) {
	_, err := decodeBatch[TestCase](`[{"id": 1, "title": "x", "severity": "high"}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity")
}

func TestDecodeBatchProseRejected(t *testing.T) {
	_, err := decodeBatch[TestCase]("Here are your test cases:\n1. Log in\n2. Log out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not match the requested schema")
}

// Fenced JSON is a schema deviation the repair does not cover.
func TestDecodeBatchMarkdownFenceRejected(t *testing.T) {
	_, err := decodeBatch[TestCase]("```json\n" + plainArrayJSON + "\n```")
	require.Error(t, err)
}

func TestDecodeBatchBDDScenarios(t *testing.T) {
	raw := `[{"feature": "Login", "scenario": "Valid credentials",
	          "given": ["a registered user"], "when": ["they sign in"],
	          "then": ["they see the dashboard"]}]`
	scenarios, err := decodeBatch[BDDScenario](raw)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "Login", scenarios[0].Feature)
	assert.Equal(t, []string{"they see the dashboard"}, scenarios[0].Then)
}

func TestDecodeBatchEmptyArray(t *testing.T) {
	cases, err := decodeBatch[TestCase](`[]`)
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"plain", FormatPlain, false},
		{"bdd", FormatBDD, false},
		{"PLAIN", FormatPlain, false},
		{"Bdd", FormatBDD, false},
		{"gherkin", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
