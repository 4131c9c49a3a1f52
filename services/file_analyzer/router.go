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

import "github.com/AleutianAI/smartcase/services/llm"

// RouteProvider picks exactly one configured provider to enrich a file's
// extracted content, or ProviderNone when no suitable client exists.
//
// This is a static priority table, configuration rather than algorithm:
//
//   - still images and video: gemini (best-for-vision), else openai
//     (general vision-capable)
//   - documents/text/data: openai, else claude, else gemini as last resort
func (a *Analyzer) RouteProvider(path string) string {
	ext := extensionOf(path)

	if visualExtensions[ext] || videoExtensions[ext] {
		if _, ok := a.byName[llm.ProviderGemini]; ok {
			return llm.ProviderGemini
		}
		if _, ok := a.byName[llm.ProviderOpenAI]; ok {
			return llm.ProviderOpenAI
		}
	}

	for _, name := range []string{llm.ProviderOpenAI, llm.ProviderClaude, llm.ProviderGemini} {
		if _, ok := a.byName[name]; ok {
			return name
		}
	}
	return ProviderNone
}
