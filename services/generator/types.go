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
)

// Format selects the shape of the generated artifacts.
type Format string

const (
	// FormatPlain produces plain-English TestCase items.
	FormatPlain Format = "plain"
	// FormatBDD produces Gherkin-style BDDScenario items.
	FormatBDD Format = "bdd"
)

// ParseFormat validates a caller-supplied format string. Anything other
// than "plain" or "bdd" (case-insensitive) is rejected before any
// network call is made.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPlain:
		return FormatPlain, nil
	case FormatBDD:
		return FormatBDD, nil
	default:
		return "", fmt.Errorf("%w: %q (must be \"plain\" or \"bdd\")", ErrInvalidFormat, s)
	}
}

// TestCase is one plain-English test case.
//
// Steps order is significant. Preconditions may be empty; the markdown
// renderer substitutes "None". Type is a free-text classification
// supplied by the model (positive/negative/edge/boundary by convention),
// not a closed enum. Provider is populated only when the case was
// produced under a multi-provider merge.
type TestCase struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Preconditions string   `json:"preconditions,omitempty"`
	Steps         []string `json:"steps"`
	Expected      string   `json:"expected"`
	Type          string   `json:"type"`
	Provider      string   `json:"provider,omitempty"`
}

// BDDScenario is one Gherkin-style scenario. At least one When and one
// Then clause are expected by convention; this is not schema-enforced,
// and a schema-valid but empty response is accepted as-is.
type BDDScenario struct {
	Feature  string   `json:"feature"`
	Scenario string   `json:"scenario"`
	Given    []string `json:"given"`
	When     []string `json:"when"`
	Then     []string `json:"then"`
	Provider string   `json:"provider,omitempty"`
}

// Batch is the ordered result of one generation call. Exactly one of
// Cases or Scenarios is populated, matching Format. Ordering is the
// insertion order of the producing provider(s).
type Batch struct {
	Format    Format        `json:"format"`
	Cases     []TestCase    `json:"cases,omitempty"`
	Scenarios []BDDScenario `json:"scenarios,omitempty"`
}

// Len reports how many items the batch holds.
func (b *Batch) Len() int {
	if b.Format == FormatPlain {
		return len(b.Cases)
	}
	return len(b.Scenarios)
}

// truncate keeps the first n items. Negative n is a no-op; n beyond the
// batch length keeps everything.
func (b *Batch) truncate(n int) {
	if n < 0 {
		return
	}
	if b.Format == FormatPlain {
		if n < len(b.Cases) {
			b.Cases = b.Cases[:n]
		}
		return
	}
	if n < len(b.Scenarios) {
		b.Scenarios = b.Scenarios[:n]
	}
}
