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
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

const pdfNoTextMessage = "Could not extract text from PDF."

// extractPDF tries the layout-aware row extraction first and falls back
// to the plain-text stream when it yields nothing. The pdf library
// panics on some malformed documents; the dispatch-level recover in
// Analyzer.extract catches those.
func extractPDF(path string) Result {
	metadata := map[string]any{"file_size": fileSize(path)}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return Result{
			FilePath: path,
			FileType: FileTypePDF,
			Content:  "PDF extraction failed: " + err.Error(),
			Metadata: metadata,
		}
	}
	defer f.Close()

	metadata["pages"] = reader.NumPage()

	content := extractPDFByRows(reader)
	if strings.TrimSpace(content) == "" {
		content = extractPDFPlainText(reader)
	}
	if strings.TrimSpace(content) == "" {
		content = pdfNoTextMessage
	}

	return Result{
		FilePath: path,
		FileType: FileTypePDF,
		Content:  strings.TrimSpace(content),
		Metadata: metadata,
	}
}

func extractPDFByRows(reader *pdf.Reader) string {
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return ""
		}
		for _, row := range rows {
			for _, text := range row.Content {
				sb.WriteString(text.S)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func extractPDFPlainText(reader *pdf.Reader) string {
	plain, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return ""
	}
	return buf.String()
}
