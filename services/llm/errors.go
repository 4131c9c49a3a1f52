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

import "errors"

var (
	// ErrUnsupportedProvider is returned for provider names outside the
	// recognized set (openai, gemini, claude, all).
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")

	// ErrMissingCredential is returned when a selected provider's API key
	// is absent from both the explicit key map and its environment variables.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrNoProviderConfigured is returned when the "all" selection resolves
	// to zero usable providers.
	ErrNoProviderConfigured = errors.New("no LLM provider configured")
)
