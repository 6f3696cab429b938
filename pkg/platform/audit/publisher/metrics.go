package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit delivery.
type Metrics struct {
	Published       prometheus.Counter
	PersistFailures prometheus.Counter
	Dropped         prometheus.Counter
	FallbackWrites  prometheus.Counter
	BreakerState    prometheus.Gauge
}

// NewMetrics registers the delivery metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Published: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulbound_audit_published_total",
			Help: "Total number of audit events persisted by the primary sink",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulbound_audit_persist_failures_total",
			Help: "Total number of audit events the primary sink rejected",
		}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulbound_audit_dropped_total",
			Help: "Total number of audit events dropped because the async buffer was full",
		}),
		FallbackWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulbound_audit_fallback_writes_total",
			Help: "Total number of audit events written to the fallback store while the breaker was open",
		}),
		BreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "soulbound_audit_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
	}
}

func (m *Metrics) incPublished() {
	if m != nil {
		m.Published.Inc()
	}
}

func (m *Metrics) incPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) incDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) incFallbackWrites() {
	if m != nil {
		m.FallbackWrites.Inc()
	}
}

func (m *Metrics) setBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerState.Set(1)
	} else {
		m.BreakerState.Set(0)
	}
}
