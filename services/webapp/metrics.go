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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics holds the server's Prometheus instruments on a private
// registry, so tests can spin up several servers without collision.
type metrics struct {
	registry *prometheus.Registry

	generateRequests *prometheus.CounterVec
	generateDuration *prometheus.HistogramVec
	uploadedFiles    prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		generateRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartcase_generate_requests_total",
			Help: "Generation requests by artifact format and outcome.",
		}, []string{"format", "status"}),
		generateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smartcase_generate_duration_seconds",
			Help:    "End-to-end generation latency, including provider calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		uploadedFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartcase_uploaded_context_files_total",
			Help: "Context files received via multipart upload.",
		}),
	}

	m.registry.MustRegister(
		m.generateRequests,
		m.generateDuration,
		m.uploadedFiles,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
