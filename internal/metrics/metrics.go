// Package metrics defines the Prometheus collectors for question answering
// and an HTTP handler for scraping them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for QueriesTotal.
const (
	ResultAnswered = "answered"
	ResultEmpty    = "empty"
	ResultError    = "error"
)

// Metrics holds the collectors recorded by the question-answering service.
type Metrics struct {
	QueriesTotal     *prometheus.CounterVec
	QueryDuration    prometheus.Histogram
	DocumentsIndexed prometheus.Gauge
	SentencesScored  prometheus.Histogram

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qa_queries_total",
				Help: "Query-answering passes by result (answered, empty, error).",
			},
			[]string{"result"},
		),
		QueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qa_query_duration_seconds",
				Help:    "Time spent answering one query.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		DocumentsIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "qa_documents_indexed",
				Help: "Number of corpus documents loaded.",
			},
		),
		SentencesScored: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qa_sentences_scored",
				Help:    "Number of candidate sentences scored per query.",
				Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.QueriesTotal, m.QueryDuration, m.DocumentsIndexed, m.SentencesScored)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
