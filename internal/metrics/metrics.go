// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dishcovery"

// Metrics holds every collector on its own registry so that several
// instances can coexist in tests. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	llmRequests     *prometheus.CounterVec
	parserFallbacks *prometheus.CounterVec
	videoSearches   *prometheus.CounterVec
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		llmRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Generative-text requests by outcome",
			},
			[]string{"outcome"},
		),
		parserFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parser_fallbacks_total",
				Help:      "Fields that fell back to their default value",
			},
			[]string{"kind", "field"},
		),
		videoSearches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "video_searches_total",
				Help:      "Video searches by outcome",
			},
			[]string{"outcome"},
		),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.llmRequests,
		m.parserFallbacks,
		m.videoSearches,
		m.requestCount,
		m.requestDuration,
	)
	return m
}

// LLMRequest counts a generative-text call. outcome is "ok", "error" or "cache_hit".
func (m *Metrics) LLMRequest(outcome string) {
	if m == nil {
		return
	}
	m.llmRequests.WithLabelValues(outcome).Inc()
}

// ParserFallback counts a default substitution.
func (m *Metrics) ParserFallback(kind, field string) {
	if m == nil {
		return
	}
	m.parserFallbacks.WithLabelValues(kind, field).Inc()
}

// VideoSearch counts a video search.
func (m *Metrics) VideoSearch(outcome string) {
	if m == nil {
		return
	}
	m.videoSearches.WithLabelValues(outcome).Inc()
}

// RecordRequest records request metrics
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusStr := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, statusStr).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
