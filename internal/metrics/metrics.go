// Package metrics exposes Prometheus instruments for the API.
package metrics

import (
	"net/http"
	"time"

	"github.com/polyglot/api/internal/languages"
	"github.com/polyglot/api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "polyglot"

// otherLanguage labels generations for languages outside the catalog
const otherLanguage = "other"

type Metrics struct {
	gatherer prometheus.Gatherer

	Generations    *prometheus.CounterVec
	GenerationTime *prometheus.HistogramVec
	RemoteFailures *prometheus.CounterVec
	Analyses       prometheus.Counter
	HistoryAppends *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	CircuitState   prometheus.Gauge
}

// New registers every instrument with reg
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		Generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Code generations by language and source.",
		}, []string{"language", "source"}),
		GenerationTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time to produce code, including the remote attempt.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		RemoteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_failures_total",
			Help:      "Remote model failures that fell back to a template.",
		}, []string{"reason"}),
		Analyses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Prompts run through the language analyzer.",
		}),
		HistoryAppends: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_appends_total",
			Help:      "History appends by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		CircuitState: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "llm_circuit_state",
			Help:      "Remote model circuit state (0 closed, 1 open, 2 half-open).",
		}),
	}
}

// ObserveGeneration counts a generation. Languages without a template share
// the "other" label so callers cannot grow the series set.
func (m *Metrics) ObserveGeneration(language string, source models.GenerationSource, elapsed time.Duration) {
	if !languages.Known(language) {
		language = otherLanguage
	}
	m.Generations.WithLabelValues(language, string(source)).Inc()
	m.GenerationTime.WithLabelValues(string(source)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRemoteFailure(reason string) {
	m.RemoteFailures.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
