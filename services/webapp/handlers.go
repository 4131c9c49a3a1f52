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
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/smartcase/services/generator"
)

// GenerateRequest is the JSON body of POST /v1/generate.
type GenerateRequest struct {
	Story    string   `json:"story" binding:"required"`
	Format   string   `json:"format" binding:"omitempty,artifactformat"`
	NumCases *int     `json:"num_cases" binding:"omitempty,gte=0,lte=100"`
	Files    []string `json:"files" binding:"omitempty,dive,required"`

	// UseInputDir adds the watched input directory's current listing to
	// the context files. Ignored when the server has no input directory.
	UseInputDir bool `json:"use_input_dir"`
}

// GenerateResponse wraps the batch with request bookkeeping.
type GenerateResponse struct {
	RequestID    string           `json:"request_id"`
	Providers    []string         `json:"providers"`
	ContextFiles []string         `json:"context_files,omitempty"`
	Batch        *generator.Batch `json:"batch"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	report := s.status.Status()
	c.JSON(http.StatusOK, gin.H{
		"request_id":    c.GetString(requestIDKey),
		"providers":     s.engine.Providers(),
		"file_analyzer": report,
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files := req.Files
	if req.UseInputDir && s.watcher != nil {
		files = append(files, s.watcher.Files()...)
	}
	s.generate(c, req.Story, req.Format, req.NumCases, files)
}

// handleGenerateUpload accepts a multipart form: story, format and
// num_cases fields plus any number of "files" parts. Uploads are staged
// in a per-request temp dir and handed to the core as explicit paths;
// the staging dir is removed when the request finishes.
func (s *Server) handleGenerateUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}

	story := c.PostForm("story")
	if story == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "story field is required"})
		return
	}

	var numCases *int
	if raw := c.PostForm("num_cases"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "num_cases must be an integer in [0, 100]"})
			return
		}
		numCases = &n
	}

	tempDir, err := os.MkdirTemp("", "smartcase-upload-*")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage uploads"})
		return
	}
	defer os.RemoveAll(tempDir)

	var files []string
	for _, header := range form.File["files"] {
		dest := filepath.Join(tempDir, filepath.Base(header.Filename))
		if err := c.SaveUploadedFile(header, dest); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload " + header.Filename})
			return
		}
		s.metrics.uploadedFiles.Inc()
		files = append(files, dest)
	}

	s.generate(c, story, c.PostForm("format"), numCases, files)
}

// generate is the shared tail of both generate handlers: format
// resolution, the engine call, metrics, and response shaping.
func (s *Server) generate(c *gin.Context, story, format string, numCases *int, files []string) {
	if format == "" {
		format = string(generator.FormatPlain)
	}
	parsed, err := generator.ParseFormat(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	batch, err := s.engine.GenerateTestCases(c.Request.Context(), story, parsed, generator.GenerateOptions{
		NumCases:        numCases,
		AdditionalFiles: files,
	})
	s.metrics.generateDuration.WithLabelValues(string(parsed)).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.generateRequests.WithLabelValues(string(parsed), "error").Inc()
		status := http.StatusBadGateway
		if errors.Is(err, generator.ErrInvalidFormat) {
			status = http.StatusBadRequest
		}
		s.logger.Error("generation failed",
			"request_id", c.GetString(requestIDKey), "format", parsed, "error", err)
		c.JSON(status, gin.H{
			"request_id": c.GetString(requestIDKey),
			"error":      err.Error(),
		})
		return
	}

	s.metrics.generateRequests.WithLabelValues(string(parsed), "success").Inc()
	c.JSON(http.StatusOK, GenerateResponse{
		RequestID:    c.GetString(requestIDKey),
		Providers:    s.engine.Providers(),
		ContextFiles: files,
		Batch:        batch,
	})
}
