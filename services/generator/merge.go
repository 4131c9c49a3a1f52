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
	"errors"
	"fmt"
)

// providerResult pairs one surviving provider with its batch. The slice
// of these preserves client configuration order, which is what the merge
// ordering contract depends on.
type providerResult struct {
	provider string
	batch    *Batch
}

// generateMerged runs the generation engine once per configured
// provider, sequentially and in configuration order. A single provider's
// failure is logged and skipped; the call fails only when every provider
// fails. One survivor is returned untouched (no provider tag); two or
// more are merged.
func (e *Engine) generateMerged(ctx context.Context, story string, format Format, fileContext string) (*Batch, error) {
	var (
		results  []providerResult
		failures []error
	)
	for _, client := range e.clients {
		batch, err := e.generateWith(ctx, client, story, format, fileContext)
		if err != nil {
			e.logger.Warn("Provider failed, continuing with remaining providers",
				"provider", client.Name(), "error", err)
			failures = append(failures, err)
			continue
		}
		results = append(results, providerResult{provider: client.Name(), batch: batch})
	}

	switch len(results) {
	case 0:
		return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(failures...))
	case 1:
		return results[0].batch, nil
	default:
		return mergeResults(format, results), nil
	}
}

// mergeResults concatenates each provider's items in provider
// configuration order, reassigns test case ids sequentially from 1
// across the merged list (BDD scenarios carry no id), and stamps every
// item with the provider that produced it. No deduplication or
// cross-provider similarity merging is performed: the merged length is
// the sum of the surviving providers' lengths.
func mergeResults(format Format, results []providerResult) *Batch {
	merged := &Batch{Format: format}
	if format == FormatPlain {
		nextID := 1
		for _, r := range results {
			for _, tc := range r.batch.Cases {
				tc.ID = nextID
				tc.Provider = r.provider
				merged.Cases = append(merged.Cases, tc)
				nextID++
			}
		}
		return merged
	}
	for _, r := range results {
		for _, sc := range r.batch.Scenarios {
			sc.Provider = r.provider
			merged.Scenarios = append(merged.Scenarios, sc)
		}
	}
	return merged
}
