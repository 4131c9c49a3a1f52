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
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/smartcase/pkg/ux"
	"github.com/AleutianAI/smartcase/services/file_analyzer"
	"github.com/AleutianAI/smartcase/services/llm"
)

func runStatus(cmd *cobra.Command, args []string) error {
	clients, err := llm.BuildClients(cmd.Context(), llm.ProviderAll, nil)
	if err != nil && !errors.Is(err, llm.ErrNoProviderConfigured) {
		return err
	}

	analyzer := file_analyzer.New(clients, logger.Slog())
	report := analyzer.Status()

	ux.Title("Smartcase Status")
	for _, name := range llm.ProviderOrder {
		configured := false
		for _, available := range report.AvailableProviders {
			if available == name {
				configured = true
				break
			}
		}
		if configured {
			ux.Success(name + " configured")
		} else {
			ux.Warning(name + " not configured (missing credential)")
		}
	}

	ux.KeyValue("visual analysis", report.VisualAnalysisProvider)
	ux.KeyValue("document analysis", strings.Join(report.DocumentProviders, ", "))
	ux.KeyValue("vision capable", strconv.FormatBool(report.VisionCapableConfigured))
	ux.KeyValue("supported formats", strconv.Itoa(report.TotalSupportedFormats))
	ux.Muted(strings.Join(report.SupportedExtensions, " "))
	return nil
}
