package labeling

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records separation-oracle activity. A nil *Metrics records nothing.
type Metrics struct {
	OracleCalls    prometheus.Counter
	OracleErrors   prometheus.Counter
	OracleLoss     prometheus.Histogram
	OracleDuration prometheus.Histogram
}

// NewMetrics creates the oracle collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OracleCalls: factory.NewCounter(prometheus.CounterOpts{
			Name: "graphlabel_oracle_calls_total",
			Help: "Total number of separation oracle calls",
		}),
		OracleErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "graphlabel_oracle_errors_total",
			Help: "Separation oracle calls that returned an error",
		}),
		OracleLoss: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphlabel_oracle_loss",
			Help:    "Hamming loss of the labelings returned by the separation oracle",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		}),
		OracleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphlabel_oracle_duration_seconds",
			Help:    "Duration of separation oracle calls in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

func (m *Metrics) observe(loss float64, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.OracleCalls.Inc()
	m.OracleDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.OracleErrors.Inc()
		return
	}
	m.OracleLoss.Observe(loss)
}
