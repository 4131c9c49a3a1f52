// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package webapp exposes the generation pipeline as a JSON HTTP API.
// All handlers are thin pass-throughs to the generator and analyzer
// services; no generation logic lives here.
package webapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/smartcase/services/file_analyzer"
	"github.com/AleutianAI/smartcase/services/generator"
)

// Generator is the slice of the generation engine the handlers need.
type Generator interface {
	GenerateTestCases(ctx context.Context, story string, format generator.Format, opts generator.GenerateOptions) (*generator.Batch, error)
	Providers() []string
}

// StatusReporter reports analyzer capabilities for GET /v1/status.
type StatusReporter interface {
	Status() file_analyzer.StatusReport
}

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// InputDir, when non-empty, enables the fsnotify-backed context
	// directory: its supported files are offered to generate requests
	// that set use_input_dir.
	InputDir string
}

// Server wires the gin router, metrics, and the optional input watcher
// around the generation engine.
type Server struct {
	engine  Generator
	status  StatusReporter
	logger  *slog.Logger
	metrics *metrics
	watcher *InputWatcher
	config  Config
	router  *gin.Engine
}

// NewServer builds a ready-to-run server. When config.InputDir is set,
// the directory must exist; watcher startup failure is an error rather
// than a silent capability loss.
func NewServer(engine Generator, status StatusReporter, config Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:  engine,
		status:  status,
		logger:  logger,
		metrics: newMetrics(),
		config:  config,
	}

	if config.InputDir != "" {
		watcher, err := NewInputWatcher(config.InputDir, logger)
		if err != nil {
			return nil, err
		}
		s.watcher = watcher
	}

	registerValidations()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger))
	s.setupRoutes(router)
	s.router = router
	return s, nil
}

func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/generate/upload", s.handleGenerateUpload)
		v1.GET("/status", s.handleStatus)
	}
}

// registerValidations installs the "artifactformat" rule on gin's
// binding validator: empty (server default) or anything ParseFormat
// accepts. Registration is idempotent.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("artifactformat", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true
			}
			_, err := generator.ParseFormat(value)
			return err == nil
		})
	}
}

// Router exposes the configured handler for tests.
func (s *Server) Router() http.Handler { return s.router }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.watcher != nil {
		go s.watcher.Run(ctx)
		defer s.watcher.Close()
	}

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}
