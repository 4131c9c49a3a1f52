// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package webapp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/AleutianAI/smartcase/services/file_analyzer"
)

// InputWatcher keeps a fresh listing of supported context files in a
// configured input directory. The listing is consulted by generate
// requests that opt into the auto-discovered directory; discovery never
// happens inside the generation core.
type InputWatcher struct {
	dir     string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	files []string
}

// NewInputWatcher scans dir once and begins watching it for changes.
// The directory must exist.
func NewInputWatcher(dir string, logger *slog.Logger) (*InputWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	iw := &InputWatcher{dir: dir, logger: logger, watcher: fsw}
	iw.rescan()
	return iw, nil
}

// Run processes filesystem events until the context is canceled. Any
// create/remove/rename triggers a full rescan; a rescan is cheap at the
// directory sizes involved and immune to event coalescing.
func (iw *InputWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				iw.rescan()
			}
		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			iw.logger.Warn("input directory watch error", "dir", iw.dir, "error", err)
		}
	}
}

// Files returns a snapshot of the current supported-file listing,
// sorted by path.
func (iw *InputWatcher) Files() []string {
	iw.mu.RLock()
	defer iw.mu.RUnlock()
	out := make([]string, len(iw.files))
	copy(out, iw.files)
	return out
}

// Close stops the underlying fsnotify watcher.
func (iw *InputWatcher) Close() error { return iw.watcher.Close() }

func (iw *InputWatcher) rescan() {
	files, err := DiscoverContextFiles(iw.dir)
	if err != nil {
		iw.logger.Warn("input directory rescan failed", "dir", iw.dir, "error", err)
		return
	}
	iw.mu.Lock()
	iw.files = files
	iw.mu.Unlock()
	iw.logger.Debug("input directory rescanned", "dir", iw.dir, "files", len(files))
}

// DiscoverContextFiles lists the supported files directly inside dir
// (no recursion), sorted by path. Shared by the CLI and the watcher.
func DiscoverContextFiles(dir string) ([]string, error) {
	supported := make(map[string]bool)
	for _, ext := range file_analyzer.SupportedExtensions() {
		supported[ext] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if supported[ext] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
