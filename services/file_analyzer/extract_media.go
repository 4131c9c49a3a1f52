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
	"image"
	"mime"
	"os"

	// Decoders registered for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const imageNoTextMessage = "No text content extracted from image."

// extractImage records dimensions and format. No OCR backend is wired
// (there is no pure-Go tesseract); textual content comes from the vision
// provider when one is routed, which appends its description to Content
// during enrichment. Without a vision client the content degrades to the
// fixed no-text message.
func extractImage(path string) Result {
	metadata := map[string]any{"file_size": fileSize(path)}

	f, err := os.Open(path)
	if err != nil {
		return Result{FilePath: path, FileType: FileTypeImage,
			Content: "Image processing failed: " + err.Error(), Metadata: metadata}
	}
	defer f.Close()

	config, format, err := image.DecodeConfig(f)
	if err != nil {
		return Result{FilePath: path, FileType: FileTypeImage,
			Content: "Image processing failed: " + err.Error(), Metadata: metadata}
	}
	metadata["dimensions"] = []int{config.Width, config.Height}
	metadata["format"] = format

	return Result{
		FilePath: path,
		FileType: FileTypeImage,
		Content:  imageNoTextMessage,
		Metadata: metadata,
	}
}

// extractVideo is metadata-only; frame-level analysis is not
// implemented, and the content string says so rather than erroring.
func extractVideo(path string) Result {
	size := fileSize(path)
	return Result{
		FilePath: path,
		FileType: FileTypeVideo,
		Content: fmt.Sprintf("Video file: %s\nSize: %d bytes\nFrame-level analysis is not implemented.",
			baseName(path), size),
		Metadata: map[string]any{"file_size": size},
	}
}

// extractUnknown records the attempted MIME type and size.
func extractUnknown(path string) Result {
	ext := extensionOf(path)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	size := fileSize(path)
	return Result{
		FilePath: path,
		FileType: FileTypeUnknown,
		Content:  fmt.Sprintf("Unknown file type: %s\nMIME type: %s\nSize: %d bytes", ext, mimeType, size),
		Metadata: map[string]any{"file_size": size, "mime_type": mimeType},
	}
}
