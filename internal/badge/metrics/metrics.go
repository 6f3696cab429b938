package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "soulbound/pkg/domain-errors"
)

// Metrics provides observability for the badge registry: issuance volume,
// rejected operations and the latency of the issuance path.
type Metrics struct {
	EventsCreated     prometheus.Counter
	BadgesMinted      prometheus.Counter
	BatchSkipped      prometheus.Counter
	OperationFailures *prometheus.CounterVec
	IssueDuration     *prometheus.HistogramVec
}

// New registers the badge metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EventsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "soulbound_events_created_total",
			Help: "Total number of events registered",
		}),
		BadgesMinted: f.NewCounter(prometheus.CounterOpts{
			Name: "soulbound_badges_minted_total",
			Help: "Total number of badges issued",
		}),
		BatchSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "soulbound_batch_recipients_skipped_total",
			Help: "Batch recipients skipped because they already attended or the mint failed",
		}),
		OperationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soulbound_operation_failures_total",
			Help: "Rejected registry operations by operation and error code",
		}, []string{"operation", "code"}),
		IssueDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soulbound_issue_duration_seconds",
			Help:    "Duration of single and batch issuance",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"mode"}),
	}
}

func (m *Metrics) IncrementEventsCreated() {
	if m == nil {
		return
	}
	m.EventsCreated.Inc()
}

func (m *Metrics) AddBadgesMinted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.BadgesMinted.Add(float64(n))
}

func (m *Metrics) AddBatchSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.BatchSkipped.Add(float64(n))
}

// RecordFailure counts a rejected operation under its domain error code.
func (m *Metrics) RecordFailure(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.OperationFailures.WithLabelValues(operation, string(dErrors.CodeOf(err))).Inc()
}

// ObserveIssue records issuance latency. Call with time.Now() taken at the
// start of the operation.
func (m *Metrics) ObserveIssue(mode string, start time.Time) {
	if m == nil {
		return
	}
	m.IssueDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}
