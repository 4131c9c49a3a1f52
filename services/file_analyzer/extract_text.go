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
	"os"
	"strings"
	"unicode/utf8"
)

// extractText reads a plain-text file as UTF-8, falling back to a
// byte-compatible Latin-1 decode when the content is not valid UTF-8.
func extractText(path string) Result {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errorResult(path, "Error reading file: "+err.Error())
	}

	content := string(raw)
	encoding := "utf-8"
	if !utf8.Valid(raw) {
		content = decodeLatin1(raw)
		encoding = "latin-1"
	}

	lines := 0
	if content != "" {
		lines = strings.Count(content, "\n") + 1
	}

	return Result{
		FilePath: path,
		FileType: FileTypeText,
		Content:  content,
		Metadata: map[string]any{
			"file_size":  int64(len(raw)),
			"lines":      lines,
			"characters": len(content),
			"encoding":   encoding,
		},
	}
}

// decodeLatin1 maps each byte to the equivalent code point; every byte
// sequence is decodable, which is what makes it the best-effort fallback.
func decodeLatin1(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
