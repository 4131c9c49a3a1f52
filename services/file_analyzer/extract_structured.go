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
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// truncateBudget caps the rendered JSON/XML content carried into the
// combined context.
const truncateBudget = 5000

const truncatedMarker = "\n... [truncated]"

// extractJSON pretty-prints the document and records a recursive
// structure description in metadata. JSON is acyclic by construction, so
// the recursion always terminates.
func extractJSON(path string) Result {
	metadata := map[string]any{"file_size": fileSize(path)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{FilePath: path, FileType: FileTypeJSON,
			Content: "JSON parsing failed: " + err.Error(), Metadata: metadata}
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Result{FilePath: path, FileType: FileTypeJSON,
			Content: "JSON parsing failed: " + err.Error(), Metadata: metadata}
	}

	for k, v := range describeJSONStructure(data) {
		metadata[k] = v
	}

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return Result{FilePath: path, FileType: FileTypeJSON,
			Content: "JSON parsing failed: " + err.Error(), Metadata: metadata}
	}
	content := string(pretty)
	if len(content) > truncateBudget {
		content = content[:truncateBudget] + truncatedMarker
	}

	return Result{FilePath: path, FileType: FileTypeJSON, Content: content, Metadata: metadata}
}

// describeJSONStructure reports the top-level shape: key list for
// objects, length plus a sampled element-type list for arrays, the
// scalar type otherwise.
func describeJSONStructure(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		return map[string]any{"type": "object", "keys": keys, "key_count": len(v)}
	case []any:
		types := make(map[string]bool)
		for i, item := range v {
			if i >= 10 {
				break
			}
			types[jsonTypeName(item)] = true
		}
		var itemTypes []string
		for t := range types {
			itemTypes = append(itemTypes, t)
		}
		return map[string]any{"type": "array", "length": len(v), "item_types": itemTypes}
	default:
		return map[string]any{"type": jsonTypeName(data)}
	}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// xmlNode is a generic XML tree node captured during structure analysis.
type xmlNode struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*xmlNode
}

// extractXML renders the document as its textual projection and records
// root tag, attributes, and child structure in metadata. The same
// truncation budget as JSON applies.
func extractXML(path string) Result {
	metadata := map[string]any{"file_size": fileSize(path)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{FilePath: path, FileType: FileTypeXML,
			Content: "XML parsing failed: " + err.Error(), Metadata: metadata}
	}

	root, err := parseXMLTree(raw)
	if err != nil || root == nil {
		msg := "XML parsing failed"
		if err != nil {
			msg += ": " + err.Error()
		}
		return Result{FilePath: path, FileType: FileTypeXML, Content: msg, Metadata: metadata}
	}

	childTags := make(map[string]bool)
	for _, child := range root.Children {
		childTags[child.Tag] = true
	}
	var tags []string
	for t := range childTags {
		tags = append(tags, t)
	}
	metadata["root_tag"] = root.Tag
	metadata["attributes"] = root.Attrs
	metadata["child_count"] = len(root.Children)
	metadata["child_tags"] = tags

	content := strings.TrimSpace(string(raw))
	if len(content) > truncateBudget {
		content = content[:truncateBudget] + truncatedMarker
	}

	return Result{FilePath: path, FileType: FileTypeXML, Content: content, Metadata: metadata}
}

// parseXMLTree builds the generic node tree for the root element.
func parseXMLTree(raw []byte) (*xmlNode, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var stack []*xmlNode
	var root *xmlNode

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			node := &xmlNode{Tag: t.Name.Local, Attrs: make(map[string]string)}
			for _, attr := range t.Attr {
				node.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += strings.TrimSpace(string(t))
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return root, nil
}
