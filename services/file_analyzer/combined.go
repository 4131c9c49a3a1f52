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
	"fmt"
	"sort"
	"strings"
)

// themeRule pairs a theme label with the substrings that indicate it.
// This lexicon is configuration data: extending theme detection means
// appending a rule, not touching control flow. It is deliberately a
// heuristic summary, not semantic analysis.
type themeRule struct {
	Label    string
	Keywords []string
}

var themeLexicon = []themeRule{
	{Label: "Security requirements", Keywords: []string{"security", "ssl", "encrypt"}},
	{Label: "Payment processing", Keywords: []string{"payment", "transaction"}},
	{Label: "API integration", Keywords: []string{"api", "endpoint"}},
	{Label: "User interface", Keywords: []string{"user", "interface", "ui"}},
	{Label: "Testing scenarios", Keywords: []string{"test", "validation"}},
	{Label: "UI/UX design", Keywords: []string{"wireframe", "mockup"}},
}

// GenerateCombinedAnalysis collapses a batch of per-file results into the
// single context block appended to the user story: a per-file-type
// grouped section, aggregate counts, matched themes, and a per-provider
// tally.
func (a *Analyzer) GenerateCombinedAnalysis(results []Result) string {
	if len(results) == 0 {
		return "No files were successfully analyzed."
	}

	var sb strings.Builder
	sb.WriteString("=== COMPREHENSIVE FILE ANALYSIS ===\n\n")

	// Group by file type, preserving first-seen type order.
	grouped := make(map[string][]Result)
	var typeOrder []string
	for _, r := range results {
		if _, seen := grouped[r.FileType]; !seen {
			typeOrder = append(typeOrder, r.FileType)
		}
		grouped[r.FileType] = append(grouped[r.FileType], r)
	}

	for _, fileType := range typeOrder {
		group := grouped[fileType]
		fmt.Fprintf(&sb, "## %s FILES (%d files)\n\n", strings.ToUpper(fileType), len(group))
		for _, r := range group {
			provider := r.Provider
			if provider == "" {
				provider = "local"
			}
			narrative := r.EnhancedAnalysis
			if narrative == "" {
				narrative = r.Analysis
			}
			if narrative == "" {
				narrative = "No analysis available"
			}
			fmt.Fprintf(&sb, "### %s (analyzed by %s)\n%s\n\n", baseName(r.FilePath), provider, narrative)
		}
	}

	sb.WriteString("## COMPREHENSIVE INSIGHTS\n\n")
	fmt.Fprintf(&sb, "- Total files analyzed: %d\n", len(results))
	fmt.Fprintf(&sb, "- File types covered: %s\n", strings.Join(typeOrder, ", "))

	if themes := detectThemes(results); len(themes) > 0 {
		fmt.Fprintf(&sb, "- Key themes identified: %s\n", strings.Join(themes, ", "))
	}

	fmt.Fprintf(&sb, "- LLM providers utilized: %s\n", providerTally(results))
	sb.WriteString("\nThis unified analysis combines foundational file processing with AI-enhanced insights for comprehensive test case generation.\n")
	return sb.String()
}

// detectThemes runs the substring lexicon over every narrative.
func detectThemes(results []Result) []string {
	var combined strings.Builder
	for _, r := range results {
		if r.EnhancedAnalysis != "" {
			combined.WriteString(r.EnhancedAnalysis)
		} else {
			combined.WriteString(r.Analysis)
		}
		combined.WriteString(" ")
	}
	haystack := strings.ToLower(combined.String())

	var themes []string
	for _, rule := range themeLexicon {
		for _, kw := range rule.Keywords {
			if strings.Contains(haystack, kw) {
				themes = append(themes, rule.Label)
				break
			}
		}
	}
	return themes
}

// providerTally renders "provider: count" pairs in stable order.
func providerTally(results []Result) string {
	counts := make(map[string]int)
	for _, r := range results {
		provider := r.Provider
		if provider == "" {
			provider = "local"
		}
		counts[provider]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %d", name, counts[name])
	}
	return strings.Join(parts, ", ")
}
