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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/smartcase/services/file_analyzer"
	"github.com/AleutianAI/smartcase/services/generator"
)

// fakeEngine records the last generate call and returns a canned batch.
type fakeEngine struct {
	lastStory  string
	lastFormat generator.Format
	lastOpts   generator.GenerateOptions
	batch      *generator.Batch
	err        error
}

func (f *fakeEngine) GenerateTestCases(_ context.Context, story string, format generator.Format, opts generator.GenerateOptions) (*generator.Batch, error) {
	f.lastStory = story
	f.lastFormat = format
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *fakeEngine) Providers() []string { return []string{"openai", "claude"} }

type fakeStatus struct{}

func (fakeStatus) Status() file_analyzer.StatusReport {
	return file_analyzer.StatusReport{
		AvailableProviders:     []string{"openai", "claude"},
		VisualAnalysisProvider: "openai",
	}
}

func plainBatch() *generator.Batch {
	return &generator.Batch{
		Format: generator.FormatPlain,
		Cases: []generator.TestCase{{
			ID: 1, Title: "Valid login", Description: "d",
			Steps: []string{"s"}, Expected: "ok", Type: "positive",
		}},
	}
}

func newTestServer(t *testing.T, engine *fakeEngine, config Config) *Server {
	t.Helper()
	s, err := NewServer(engine, fakeStatus{}, config, nil)
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGenerateSuccess(t *testing.T) {
	engine := &fakeEngine{batch: plainBatch()}
	s := newTestServer(t, engine, Config{})

	w := doJSON(t, s, http.MethodPost, "/v1/generate", GenerateRequest{
		Story:  "As a user I want to log in",
		Format: "plain",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, []string{"openai", "claude"}, resp.Providers)
	require.NotNil(t, resp.Batch)
	assert.Len(t, resp.Batch.Cases, 1)
	assert.Equal(t, "As a user I want to log in", engine.lastStory)
	assert.Equal(t, generator.FormatPlain, engine.lastFormat)
}

func TestGenerateDefaultsToPlain(t *testing.T) {
	engine := &fakeEngine{batch: plainBatch()}
	s := newTestServer(t, engine, Config{})

	w := doJSON(t, s, http.MethodPost, "/v1/generate", GenerateRequest{Story: "story"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, generator.FormatPlain, engine.lastFormat)
}

func TestGenerateMissingStory(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})
	w := doJSON(t, s, http.MethodPost, "/v1/generate", map[string]any{"format": "plain"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateInvalidFormat(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})
	w := doJSON(t, s, http.MethodPost, "/v1/generate", map[string]any{
		"story": "s", "format": "gherkin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateNumCasesBounds(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})
	w := doJSON(t, s, http.MethodPost, "/v1/generate", map[string]any{
		"story": "s", "num_cases": 500,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("all providers failed")}
	s := newTestServer(t, engine, Config{})

	w := doJSON(t, s, http.MethodPost, "/v1/generate", GenerateRequest{Story: "s"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "all providers failed")
}

func TestGenerateUsesInputDirListing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reqs.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.bin"), []byte("x"), 0o600))

	engine := &fakeEngine{batch: plainBatch()}
	s := newTestServer(t, engine, Config{InputDir: dir})

	w := doJSON(t, s, http.MethodPost, "/v1/generate", GenerateRequest{
		Story:       "s",
		UseInputDir: true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, engine.lastOpts.AdditionalFiles, 1)
	assert.Equal(t, filepath.Join(dir, "reqs.txt"), engine.lastOpts.AdditionalFiles[0])
}

func TestGenerateUpload(t *testing.T) {
	engine := &fakeEngine{batch: plainBatch()}
	s := newTestServer(t, engine, Config{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("story", "upload story"))
	require.NoError(t, mw.WriteField("format", "bdd"))
	require.NoError(t, mw.WriteField("num_cases", "3"))
	part, err := mw.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("context notes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/generate/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "upload story", engine.lastStory)
	assert.Equal(t, generator.FormatBDD, engine.lastFormat)
	require.NotNil(t, engine.lastOpts.NumCases)
	assert.Equal(t, 3, *engine.lastOpts.NumCases)
	require.Len(t, engine.lastOpts.AdditionalFiles, 1)
	assert.True(t, strings.HasSuffix(engine.lastOpts.AdditionalFiles[0], "notes.txt"))
}

func TestGenerateUploadMissingStory(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("format", "plain"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/generate/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})
	w := doJSON(t, s, http.MethodGet, "/v1/status", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["request_id"])
	assert.Contains(t, w.Body.String(), "visual_analysis_provider")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})
	doJSON(t, s, http.MethodPost, "/v1/generate", GenerateRequest{Story: "s"})

	w := doJSON(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smartcase_generate_requests_total")
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t, &fakeEngine{batch: plainBatch()}, Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id-123")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, "fixed-id-123", w.Header().Get("X-Request-ID"))
}

func TestDiscoverContextFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("a,b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.bin"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))

	files, err := DiscoverContextFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.csv"),
	}, files)
}

func TestInputWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spec.md"), []byte("x"), 0o600))

	iw, err := NewInputWatcher(dir, nil)
	require.NoError(t, err)
	defer iw.Close()

	files := iw.Files()
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "spec.md"), files[0])
}
