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
	"path/filepath"
	"sort"
	"strings"
)

// Extension classification tables. These are configuration data, not
// algorithm: adjusting routing behavior means editing a set here.
var (
	visualExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".webp": true, ".bmp": true, ".tiff": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
		".mkv": true, ".webm": true,
	}
	textExtensions = map[string]bool{
		".txt": true, ".md": true, ".py": true, ".js": true,
		".go": true, ".html": true, ".css": true,
	}
	documentExtensions = map[string]bool{
		".txt": true, ".md": true, ".pdf": true, ".docx": true,
		".doc": true, ".rtf": true,
	}
	dataExtensions = map[string]bool{
		".json": true, ".xml": true, ".csv": true, ".xlsx": true, ".xls": true,
	}
)

func extensionOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// SupportedExtensions lists every extension with a dedicated extractor,
// used by the boundary layers for context-file discovery.
func SupportedExtensions() []string {
	var exts []string
	for _, set := range []map[string]bool{visualExtensions, videoExtensions, textExtensions, documentExtensions, dataExtensions} {
		for ext := range set {
			exts = append(exts, ext)
		}
	}
	return dedupSorted(exts)
}

func dedupSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
