// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics holds the Prometheus metrics of a crimeplot run.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ggcrime/ggcrime/crime"
)

// Metrics holds the counters and histograms of a run. Each Metrics
// has its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	RowsRead     prometheus.Counter
	RowsKept     prometheus.Counter
	RowsFiltered prometheus.Counter
	RowsSkipped  *prometheus.CounterVec // labels: reason={Date,District,...}

	ChartsRendered prometheus.Counter
	RenderErrors   prometheus.Counter
	RenderDuration *prometheus.HistogramVec // labels: chart

	HTTPRequests *prometheus.CounterVec // labels: route, code
}

// New creates and registers all metrics with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crimeplot",
			Name:      "rows_read_total",
			Help:      "Data rows read from the input.",
		}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crimeplot",
			Name:      "rows_kept_total",
			Help:      "Index crime rows kept after derivation.",
		}),
		RowsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crimeplot",
			Name:      "rows_filtered_total",
			Help:      "Rows dropped because they are not index crimes.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crimeplot",
			Name:      "rows_skipped_total",
			Help:      "Malformed rows skipped, by first bad column.",
		}, []string{"reason"}),
		ChartsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crimeplot",
			Name:      "charts_rendered_total",
			Help:      "Charts rendered successfully.",
		}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crimeplot",
			Name:      "render_errors_total",
			Help:      "Charts that failed to render.",
		}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crimeplot",
			Name:      "render_duration_seconds",
			Help:      "Time to build and render one chart.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"chart"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crimeplot",
			Name:      "http_requests_total",
			Help:      "Gallery HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.Registry.MustRegister(
		m.RowsRead,
		m.RowsKept,
		m.RowsFiltered,
		m.RowsSkipped,
		m.ChartsRendered,
		m.RenderErrors,
		m.RenderDuration,
		m.HTTPRequests,
	)
	return m
}

// ObserveDataset records the row counts of a loaded dataset.
func (m *Metrics) ObserveDataset(ds *crime.Dataset) {
	m.RowsRead.Add(float64(ds.Read))
	m.RowsKept.Add(float64(len(ds.Records)))
	m.RowsFiltered.Add(float64(ds.Filtered))
	for reason, n := range ds.Skipped {
		m.RowsSkipped.WithLabelValues(reason).Add(float64(n))
	}
}

// WriteFile writes the metrics to path in the Prometheus text
// format, for the node exporter's textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

// Handler returns an HTTP handler that serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
