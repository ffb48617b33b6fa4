// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dashboard's Prometheus collectors.
type Metrics struct {
	ViewRequests   *prometheus.CounterVec
	ViewErrors     *prometheus.CounterVec
	ViewDuration   *prometheus.HistogramVec
	DatasetRecords prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ViewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cord_explorer",
			Name:      "view_requests_total",
			Help:      "View computations served, by view.",
		}, []string{"view"}),
		ViewErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cord_explorer",
			Name:      "view_errors_total",
			Help:      "View requests that failed, by view and HTTP status.",
		}, []string{"view", "status"}),
		ViewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cord_explorer",
			Name:      "view_duration_seconds",
			Help:      "Time spent computing and rendering a view.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cord_explorer",
			Name:      "dataset_records",
			Help:      "Records in the loaded cleaned dataset.",
		}),
	}
	reg.MustRegister(m.ViewRequests, m.ViewErrors, m.ViewDuration, m.DatasetRecords)
	return m
}
