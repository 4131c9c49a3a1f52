// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smartcase/services/file_analyzer"
	"github.com/AleutianAI/smartcase/services/generator"
	"github.com/AleutianAI/smartcase/services/llm"
	"github.com/AleutianAI/smartcase/services/webapp"
)

func runServe(cmd *cobra.Command, args []string) error {
	slogger := logger.Slog()

	clients, err := llm.BuildClients(cmd.Context(), provider, nil)
	if err != nil {
		return err
	}
	analyzer := file_analyzer.New(clients, slogger)
	engine := generator.NewWithClients(clients, analyzer, slogger)

	dir := inputDir
	if dir == "" {
		dir = os.Getenv("SMARTCASE_INPUT_DIR")
	}

	server, err := webapp.NewServer(engine, analyzer, webapp.Config{
		Addr:     listenAddr(),
		InputDir: dir,
	}, slogger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx)
}

// listenAddr resolves --addr, then APP_HOST/APP_PORT, then :8080.
func listenAddr() string {
	if serveAddr != "" {
		return serveAddr
	}
	host := os.Getenv("APP_HOST")
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	return host + ":" + port
}
