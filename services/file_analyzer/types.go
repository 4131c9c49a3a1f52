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

// File type tags. Every extraction outcome carries exactly one of these;
// FileTypeError marks a file whose extraction failed entirely.
const (
	FileTypeText        = "text"
	FileTypePDF         = "pdf"
	FileTypeDocx        = "docx"
	FileTypeSpreadsheet = "spreadsheet"
	FileTypeJSON        = "json"
	FileTypeXML         = "xml"
	FileTypeImage       = "image"
	FileTypeVideo       = "video"
	FileTypeUnknown     = "unknown"
	FileTypeError       = "error"
)

// ProviderNone is the router sentinel meaning "no enrichment".
const ProviderNone = "none"

// Result is one file's extraction outcome. Content may carry an error
// message in lieu of extracted text; Metadata is an open key-value bag
// (size, structural facts, error flags). EnhancedAnalysis holds the
// LLM-enriched narrative when a provider was available. Results live for
// one analysis call only; nothing is cached across calls.
type Result struct {
	FilePath         string         `json:"file_path"`
	FileType         string         `json:"file_type"`
	Content          string         `json:"content"`
	Metadata         map[string]any `json:"metadata"`
	Analysis         string         `json:"analysis,omitempty"`
	EnhancedAnalysis string         `json:"enhanced_analysis,omitempty"`
	Provider         string         `json:"provider"`
	Error            string         `json:"error,omitempty"`
}

// Summary renders the local (non-LLM) summary used whenever no provider
// is available or enrichment fails.
func (r *Result) Summary() string {
	if r.Content == "" {
		return "No content extracted from file."
	}
	preview := r.Content
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	return "File type: " + r.FileType + "\nContent preview: " + preview
}
