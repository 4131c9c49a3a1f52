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

const plainPromptTemplate = `You are an expert QA engineer. From the user story: "%s"

Generate 5-10 comprehensive test cases in plain English, covering positive, negative, edge, and boundary scenarios.
Include prerequisites, instructions, and expected criteria if relevant.

IMPORTANT: Return ONLY a JSON array of test cases, not an object with an "items" key.

%s`

const bddPromptTemplate = `You are an expert QA engineer skilled in BDD. From the user story: "%s"

Generate 5-10 BDD scenarios in Gherkin format, covering positive, negative, edge, and boundary cases.
Include prerequisites in 'Given', actions in 'When', expectations in 'Then'.

IMPORTANT: Return ONLY a JSON array of scenarios, not an object with an "items" key.

%s`

const plainFormatInstructions = `The output must be a raw JSON array. Each element must be an object with exactly these fields:
  "id": unique positive integer
  "title": string, the test case title
  "description": string, detailed description
  "preconditions": string, prerequisites or setup (may be null)
  "steps": array of strings, step-by-step instructions in order
  "expected": string, the expected outcome
  "type": string, one of positive / negative / edge / boundary

Do not wrap the array in markdown fences or in an enclosing object.`

const bddFormatInstructions = `The output must be a raw JSON array. Each element must be an object with exactly these fields:
  "feature": string, the feature name
  "scenario": string, the scenario title
  "given": array of strings, preconditions
  "when": array of strings, actions
  "then": array of strings, expectations

Do not wrap the array in markdown fences or in an enclosing object.`

// buildPrompt assembles the provider-agnostic instruction prompt for one
// generation request. When fileContext is non-empty it is appended to the
// story; an empty context is omitted entirely rather than rendered as an
// empty section.
func buildPrompt(story string, format Format, fileContext string) string {
	subject := story
	if strings.TrimSpace(fileContext) != "" {
		subject = story + "\n\nAdditional Context from Files:\n" + fileContext
	}
	if format == FormatPlain {
		return fmt.Sprintf(plainPromptTemplate, subject, plainFormatInstructions)
	}
	return fmt.Sprintf(bddPromptTemplate, subject, bddFormatInstructions)
}
