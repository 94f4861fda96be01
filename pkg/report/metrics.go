// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/sysreport/pkg/errors"
	"github.com/NVIDIA/sysreport/pkg/measurement"
)

// Metrics records section collection metrics on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	reportDuration  prometheus.Histogram
	sectionDuration *prometheus.HistogramVec
	sectionTotal    *prometheus.CounterVec
	degradedCount   prometheus.Gauge
}

// NewMetrics creates the report metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		reportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sysreport_report_duration_seconds",
				Help:    "Time taken to assemble a complete report",
				Buckets: []float64{1, 2, 5, 10, 30, 60},
			},
		),
		sectionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sysreport_section_duration_seconds",
				Help:    "Time taken by individual section collectors",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15},
			},
			[]string{"section"},
		),
		sectionTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sysreport_section_total",
				Help: "Total number of section collections by outcome",
			},
			[]string{"section", "status"}, // ok or degraded
		),
		degradedCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sysreport_degraded_sections",
				Help: "Number of degraded sections in the last report",
			},
		),
	}
}

func (m *Metrics) observeSection(t measurement.Type, status Status, d time.Duration) {
	if m == nil {
		return
	}
	m.sectionDuration.WithLabelValues(t.String()).Observe(d.Seconds())
	m.sectionTotal.WithLabelValues(t.String(), string(status)).Inc()
}

func (m *Metrics) observeReport(degraded int, d time.Duration) {
	if m == nil {
		return
	}
	m.reportDuration.Observe(d.Seconds())
	m.degradedCount.Set(float64(degraded))
}

// WriteToTextfile writes all gathered metrics in the Prometheus text format
// to path, replacing it atomically.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics file", err,
			map[string]any{"path": path})
	}
	return nil
}
