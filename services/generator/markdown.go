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
	"fmt"
	"strings"
	"time"
)

// renderPlainMarkdown formats plain-English test cases as a markdown
// document headed by the generation timestamp and the original story.
func renderPlainMarkdown(cases []TestCase, story string, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Test Cases - Plain English Format\n\n")
	fmt.Fprintf(&sb, "**Generated on:** %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**User Story:** %s\n\n---\n\n", story)

	for i, tc := range cases {
		id := tc.ID
		if id == 0 {
			id = i + 1
		}
		title := tc.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&sb, "## Test Case %d: %s\n\n", id, title)
		fmt.Fprintf(&sb, "**Description:** %s\n\n", valueOr(tc.Description, "No description provided"))
		fmt.Fprintf(&sb, "**Type:** %s\n\n", valueOr(tc.Type, "Not specified"))
		if tc.Provider != "" {
			fmt.Fprintf(&sb, "**Provider:** %s\n\n", tc.Provider)
		}
		fmt.Fprintf(&sb, "**Preconditions:** %s\n\n", valueOr(tc.Preconditions, "None"))
		sb.WriteString("**Steps:**\n")
		for n, step := range tc.Steps {
			fmt.Fprintf(&sb, "%d. %s\n", n+1, step)
		}
		fmt.Fprintf(&sb, "\n**Expected Result:** %s\n\n---\n\n", valueOr(tc.Expected, "Not specified"))
	}
	return sb.String()
}

// renderBDDMarkdown formats BDD scenarios as a markdown document with a
// fenced Gherkin block per scenario.
func renderBDDMarkdown(scenarios []BDDScenario, story string, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# BDD Test Scenarios - Gherkin Format\n\n")
	fmt.Fprintf(&sb, "**Generated on:** %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**User Story:** %s\n\n---\n\n", story)

	for i, sc := range scenarios {
		feature := valueOr(sc.Feature, "Not specified")
		title := valueOr(sc.Scenario, "Untitled Scenario")

		fmt.Fprintf(&sb, "## Scenario %d: %s\n\n", i+1, title)
		fmt.Fprintf(&sb, "**Feature:** %s\n\n", feature)
		if sc.Provider != "" {
			fmt.Fprintf(&sb, "**Provider:** %s\n\n", sc.Provider)
		}
		fmt.Fprintf(&sb, "```gherkin\nFeature: %s\n\nScenario: %s\n", feature, title)
		for _, given := range sc.Given {
			fmt.Fprintf(&sb, "  Given %s\n", given)
		}
		for _, when := range sc.When {
			fmt.Fprintf(&sb, "  When %s\n", when)
		}
		for _, then := range sc.Then {
			fmt.Fprintf(&sb, "  Then %s\n", then)
		}
		sb.WriteString("```\n\n---\n\n")
	}
	return sb.String()
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
