package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"diagport/internal/domain"
)

type PrometheusMetrics struct {
	attachDuration    *prometheus.HistogramVec
	sessionActivation *prometheus.CounterVec
	registeredConfigs prometheus.Gauge
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		attachDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "diagport_server_attach_duration_seconds",
				Help:    "Duration of diagnostic server attach attempts in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"outcome"},
		),
		sessionActivation: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diagport_session_activations_total",
				Help: "Total number of startup session activation attempts",
			},
			[]string{"outcome"},
		),
		registeredConfigs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "diagport_registered_configs",
				Help: "Session configs currently pending activation",
			},
		),
	}
}

func (m *PrometheusMetrics) ObserveServerAttach(outcome domain.AttachOutcome, duration time.Duration) {
	m.attachDuration.WithLabelValues(string(outcome)).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) ObserveSessionActivation(outcome domain.SessionOutcome) {
	m.sessionActivation.WithLabelValues(string(outcome)).Inc()
}

func (m *PrometheusMetrics) SetRegisteredConfigs(count int) {
	m.registeredConfigs.Set(float64(count))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
