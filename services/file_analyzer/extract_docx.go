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
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// extractDocx concatenates paragraph text in document order and appends
// a rendered section per table (" | "-joined cells per row).
func extractDocx(path string) Result {
	metadata := map[string]any{"file_size": fileSize(path)}

	f, err := os.Open(path)
	if err != nil {
		return Result{
			FilePath: path,
			FileType: FileTypeDocx,
			Content:  "DOCX extraction failed: " + err.Error(),
			Metadata: metadata,
		}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{
			FilePath: path,
			FileType: FileTypeDocx,
			Content:  "DOCX extraction failed: " + err.Error(),
			Metadata: metadata,
		}
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return Result{
			FilePath: path,
			FileType: FileTypeDocx,
			Content:  "DOCX extraction failed: " + err.Error(),
			Metadata: metadata,
		}
	}

	var (
		paragraphs []string
		tables     []string
	)
	for _, item := range doc.Document.Body.Items {
		switch o := item.(type) {
		case *docx.Paragraph:
			if text := strings.TrimSpace(fmt.Sprint(o)); text != "" {
				paragraphs = append(paragraphs, text)
			}
		case *docx.Table:
			tables = append(tables, renderDocxTable(o))
		}
	}

	content := strings.Join(paragraphs, "\n")
	if len(tables) > 0 {
		var sb strings.Builder
		sb.WriteString(content)
		for i, table := range tables {
			fmt.Fprintf(&sb, "\n\nTable %d:\n%s", i+1, table)
		}
		content = sb.String()
	}

	metadata["paragraphs"] = len(paragraphs)
	metadata["tables"] = len(tables)

	return Result{
		FilePath: path,
		FileType: FileTypeDocx,
		Content:  content,
		Metadata: metadata,
	}
}

func renderDocxTable(table *docx.Table) string {
	var rows []string
	for _, row := range table.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var cellText []string
			for _, p := range cell.Paragraphs {
				if text := strings.TrimSpace(fmt.Sprint(p)); text != "" {
					cellText = append(cellText, text)
				}
			}
			cells = append(cells, strings.Join(cellText, " "))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}
