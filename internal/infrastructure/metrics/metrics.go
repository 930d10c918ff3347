package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	PaymentsCreated prometheus.Counter
	PaymentAmount   prometheus.Histogram
	ExportRows      prometheus.Histogram

	// Notifier metrics
	EventsBroadcast prometheus.Counter
	EventsDropped   prometheus.Counter
	Subscribers     prometheus.Gauge

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics. Call once per process;
// promauto panics on duplicate registration.
func New() *Metrics {
	return &Metrics{
		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payledger_payments_created_total",
			Help: "Total number of payments recorded",
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payledger_payment_amount",
			Help:    "Recorded payment amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		ExportRows: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payledger_export_rows",
			Help:    "Rows encoded per CSV export",
			Buckets: []float64{0, 10, 100, 1000, 10000},
		}),
		EventsBroadcast: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payledger_events_broadcast_total",
			Help: "Total payment-created events delivered to subscribers",
		}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payledger_events_dropped_total",
			Help: "Events dropped because a subscriber channel was full",
		}),
		Subscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "payledger_subscribers",
			Help: "Current number of live event subscribers",
		}),
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
	}
}
