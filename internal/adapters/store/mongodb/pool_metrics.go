package mongodb

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/event"
)

// PoolMetrics exports driver connection-pool events as Prometheus series.
type PoolMetrics struct {
	open             *prometheus.GaugeVec
	inUse            *prometheus.GaugeVec
	checkoutFailures *prometheus.CounterVec
	poolCleared      *prometheus.CounterVec
}

// NewPoolMetrics creates the pool collectors and registers them with reg.
func NewPoolMetrics(reg prometheus.Registerer) (*PoolMetrics, error) {
	m := &PoolMetrics{
		open: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "mongodb",
				Subsystem: "pool",
				Name:      "connections_open",
				Help:      "Connections currently open in the driver pool",
			},
			[]string{"address"},
		),
		inUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "mongodb",
				Subsystem: "pool",
				Name:      "connections_in_use",
				Help:      "Connections currently checked out of the driver pool",
			},
			[]string{"address"},
		),
		checkoutFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mongodb",
				Subsystem: "pool",
				Name:      "checkout_failures_total",
				Help:      "Connection checkouts that failed",
			},
			[]string{"address", "reason"},
		),
		poolCleared: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mongodb",
				Subsystem: "pool",
				Name:      "cleared_total",
				Help:      "Times the driver cleared a pool after a network error",
			},
			[]string{"address"},
		),
	}

	for _, c := range []prometheus.Collector{m.open, m.inUse, m.checkoutFailures, m.poolCleared} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering mongodb pool metrics: %w", err)
		}
	}
	return m, nil
}

// Monitor returns a driver pool monitor that feeds these metrics.
func (m *PoolMetrics) Monitor() *event.PoolMonitor {
	return &event.PoolMonitor{Event: m.handle}
}

func (m *PoolMetrics) handle(e *event.PoolEvent) {
	switch e.Type {
	case event.ConnectionCreated:
		m.open.WithLabelValues(e.Address).Inc()
	case event.ConnectionClosed:
		m.open.WithLabelValues(e.Address).Dec()
	case event.GetSucceeded:
		m.inUse.WithLabelValues(e.Address).Inc()
	case event.ConnectionReturned:
		m.inUse.WithLabelValues(e.Address).Dec()
	case event.GetFailed:
		m.checkoutFailures.WithLabelValues(e.Address, e.Reason).Inc()
	case event.PoolCleared:
		m.poolCleared.WithLabelValues(e.Address).Inc()
	}
}
