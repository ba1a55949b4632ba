// Package metrics declares the process-wide Prometheus instruments.
// Everything registers on the default registry; the server exposes it
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchTotal counts rate-dataset loads by where the served rows came
	// from. origin is "live" or "fallback"; reason is "schema_mismatch",
	// "connection" or "" for live loads.
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ezfinance",
		Subsystem: "rates",
		Name:      "fetch_total",
		Help:      "Rate dataset loads by origin and fallback reason.",
	}, []string{"origin", "reason"})

	// FetchDuration observes how long one live fetch attempt takes,
	// including failed attempts.
	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ezfinance",
		Subsystem: "rates",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of spreadsheet fetch attempts.",
		Buckets:   prometheus.DefBuckets,
	})

	// ExportTotal counts dataset downloads by format ("csv" or "xlsx").
	ExportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ezfinance",
		Subsystem: "exports",
		Name:      "total",
		Help:      "Dataset exports by file format.",
	}, []string{"format"})

	// RequestDuration observes HTTP handler latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ezfinance",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)
