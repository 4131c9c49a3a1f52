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
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat rejects output formats outside {"plain", "bdd"}.
	// Raised before any network I/O, never retried.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrAllProvidersFailed is returned by a multi-provider run in which
	// every configured provider failed.
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// GenerationError is a call-scoped failure of one provider: the network
// call failed or its response could not be parsed even after the one
// repair attempt. In single-provider mode it is fatal; in multi-provider
// mode the orchestrator logs it and continues.
type GenerationError struct {
	Provider string
	Format   Format
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s test cases with %s: %v", e.Format, e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
