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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Preview bounds applied uniformly to CSV and Excel: at most
// maxPreviewRows data rows are read, at most sampleRows are rendered.
const (
	maxPreviewRows = 100
	sampleRows     = 10
)

// extractSpreadsheet handles .csv, .xlsx and .xls. CSV and Excel share
// the rendering path and differ only in the parse call.
func extractSpreadsheet(path string) Result {
	metadata := map[string]any{"file_size": fileSize(path)}

	var (
		rows [][]string
		err  error
	)
	if extensionOf(path) == ".csv" {
		rows, err = readCSVRows(path)
	} else {
		rows, err = readExcelRows(path)
	}
	if err != nil {
		return Result{
			FilePath: path,
			FileType: FileTypeSpreadsheet,
			Content:  "Spreadsheet extraction failed: " + err.Error(),
			Metadata: metadata,
		}
	}
	if len(rows) == 0 {
		return Result{
			FilePath: path,
			FileType: FileTypeSpreadsheet,
			Content:  "Spreadsheet is empty.",
			Metadata: metadata,
		}
	}

	columns := rows[0]
	data := rows[1:]
	metadata["rows"] = len(data)
	metadata["columns"] = len(columns)
	metadata["column_names"] = columns

	var sb strings.Builder
	sb.WriteString("Spreadsheet Summary:\n")
	fmt.Fprintf(&sb, "Columns: %s\n", strings.Join(columns, ", "))
	fmt.Fprintf(&sb, "Shape: (%d, %d)\n\n", len(data), len(columns))
	sb.WriteString("Sample data:\n")
	for i, row := range data {
		if i >= sampleRows {
			break
		}
		fmt.Fprintf(&sb, "%s\n", strings.Join(row, " | "))
	}

	return Result{
		FilePath: path,
		FileType: FileTypeSpreadsheet,
		Content:  sb.String(),
		Metadata: metadata,
	}
}

// readCSVRows reads the header plus at most maxPreviewRows data rows.
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are preview data, not errors

	var rows [][]string
	for len(rows) <= maxPreviewRows {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readExcelRows reads the first sheet's header plus at most
// maxPreviewRows data rows.
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) > maxPreviewRows+1 {
		rows = rows[:maxPreviewRows+1]
	}
	return rows, nil
}
