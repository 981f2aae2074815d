package acta

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"actavc/pkg/platform/circuit"
)

// Metrics observes vault API calls.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	BreakerOpen     prometheus.Gauge
	BreakerRejects  prometheus.Counter
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "actavc_acta_request_duration_seconds",
			Help:    "Duration of vault API operations, including wallet signing",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "actavc_acta_requests_total",
			Help: "Vault API operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		BreakerOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "actavc_acta_breaker_open",
			Help: "1 while the vault API circuit breaker is open",
		}),
		BreakerRejects: f.NewCounter(prometheus.CounterOpts{
			Name: "actavc_acta_breaker_rejections_total",
			Help: "Calls refused because the vault API circuit breaker was open",
		}),
	}
}

func (m *Metrics) observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) breakerChanged(change circuit.StateChange) {
	if m == nil {
		return
	}
	if change.Opened {
		m.BreakerOpen.Set(1)
	}
	if change.Closed {
		m.BreakerOpen.Set(0)
	}
}

func (m *Metrics) rejected() {
	if m == nil {
		return
	}
	m.BreakerRejects.Inc()
}
