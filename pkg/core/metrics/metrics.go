// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     metrics
// Description: Prometheus counters for render boundaries
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// GuardMetrics counts boundary events per boundary name
type GuardMetrics struct {
	faults         *prometheus.CounterVec
	retries        *prometheus.CounterVec
	reportFailures *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewGuardMetrics creates the counters on a fresh registry that also carries
// the Go runtime and process collectors
func NewGuardMetrics() *GuardMetrics {
	m := &GuardMetrics{
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boundary_faults_total",
				Help: "Total render faults intercepted by a boundary",
			},
			[]string{"boundary"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boundary_retries_total",
				Help: "Total retries requested from a boundary fallback",
			},
			[]string{"boundary"},
		),
		reportFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boundary_report_failures_total",
				Help: "Total fault reports that failed or were dropped",
			},
			[]string{"boundary"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.faults,
		m.retries,
		m.reportFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// FaultRecorded increments boundary_faults_total
func (m *GuardMetrics) FaultRecorded(boundary string) {
	m.faults.WithLabelValues(boundary).Inc()
}

// RetryRecorded increments boundary_retries_total
func (m *GuardMetrics) RetryRecorded(boundary string) {
	m.retries.WithLabelValues(boundary).Inc()
}

// ReportFailed increments boundary_report_failures_total
func (m *GuardMetrics) ReportFailed(boundary string) {
	m.reportFailures.WithLabelValues(boundary).Inc()
}

// Registry returns the registry holding the counters
func (m *GuardMetrics) Registry() *prometheus.Registry {
	return m.registry
}
