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
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeBatch parses a provider's raw response into the target item type.
//
// The strict pass requires a bare JSON array of schema-conformant
// objects. On failure, the single repair heuristic runs: if the raw text
// is a JSON object carrying an "items" array, the strict pass is retried
// against that array. No other heuristics (fence stripping, trailing
// comma repair) are attempted; when the repair also fails the ORIGINAL
// parse error is propagated.
func decodeBatch[T any](raw string) ([]T, error) {
	items, err := decodeStrict[T]([]byte(raw))
	if err == nil {
		return items, nil
	}
	if inner, ok := tryUnwrapItemsEnvelope([]byte(raw)); ok {
		if repaired, repairErr := decodeStrict[T](inner); repairErr == nil {
			return repaired, nil
		}
	}
	return nil, fmt.Errorf("response did not match the requested schema: %w", err)
}

// decodeStrict decodes a JSON array of T, rejecting unknown fields.
func decodeStrict[T any](data []byte) ([]T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var items []T
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// tryUnwrapItemsEnvelope is the one-shot repair for the common schema
// deviation where the model ignores the "return a bare array"
// instruction and responds with {"items": [...]}. It reports the inner
// array and true only when the raw text is a valid JSON object whose
// "items" member is a JSON array.
func tryUnwrapItemsEnvelope(raw []byte) (json.RawMessage, bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, false
	}
	inner, ok := envelope["items"]
	if !ok {
		return nil, false
	}
	var probe []json.RawMessage
	if err := json.Unmarshal(inner, &probe); err != nil {
		return nil, false
	}
	return inner, true
}
