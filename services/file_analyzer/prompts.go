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

import "fmt"

// visualAnalysisPrompt asks for a UI/wireframe-aware description of
// visual content.
func visualAnalysisPrompt(result *Result) string {
	return fmt.Sprintf(`Analyze this visual content for test case generation:

File: %s
Type: %s
Content: %s
Metadata: %v

Please provide insights for:
1. UI/UX elements visible
2. User interaction points
3. Layout and design patterns
4. Accessibility considerations
5. Test scenarios for this visual content

Focus on actionable insights for comprehensive test case generation.`,
		result.FilePath, result.FileType, result.Content, result.Metadata)
}

// documentAnalysisPrompt asks for testable requirements extracted from
// document/data content. Content is capped so oversized files do not
// blow the provider's context window.
func documentAnalysisPrompt(result *Result) string {
	content := result.Content
	if len(content) > 2000 {
		content = content[:2000] + "..."
	}
	return fmt.Sprintf(`Analyze this document content for test case generation:

File: %s
Type: %s
Content: %s
Metadata: %v

Please provide insights for:
1. Key requirements and specifications
2. Business rules and constraints
3. Data structures and formats
4. Security and compliance considerations
5. Integration points and dependencies

Focus on extracting testable requirements and scenarios.`,
		result.FilePath, result.FileType, content, result.Metadata)
}
