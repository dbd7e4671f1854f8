// Package metrics holds the Prometheus collectors of the ledger workflows.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"inn_ledger/internal/domain"
)

const namespace = "inn_ledger"

type Ledger struct {
	workflows *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	stock     *prometheus.CounterVec
}

func NewLedger(reg prometheus.Registerer) *Ledger {
	l := &Ledger{
		workflows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflows_total",
			Help:      "Transaction workflow calls by operation and outcome code.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "workflow_duration_seconds",
			Help:      "Transaction workflow latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		stock: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_moved_total",
			Help:      "Asset units added to or removed from stock by committed workflows.",
		}, []string{"direction"}),
	}

	if reg != nil {
		reg.MustRegister(l.workflows, l.duration, l.stock)
	}

	return l
}

// Observe records one workflow call. A nil receiver is a no-op.
func (l *Ledger) Observe(operation string, start time.Time, err error) {
	if l == nil {
		return
	}

	outcome := "ok"

	if err != nil {
		outcome = "error"

		if code, ok := domain.GetCode(err); ok {
			outcome = code.String()
		}
	}

	l.workflows.WithLabelValues(operation, outcome).Inc()
	l.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// StockMoved records committed stock deltas.
func (l *Ledger) StockMoved(deltas ...int64) {
	if l == nil {
		return
	}

	for _, d := range deltas {
		switch {
		case d > 0:
			l.stock.WithLabelValues("in").Add(float64(d))
		case d < 0:
			l.stock.WithLabelValues("out").Add(float64(-d))
		}
	}
}
