package limelight

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the poll-loop collectors for one client. Collectors are
// only registered when the caller passes a registry via WithMetrics; an
// unregistered client records nothing.
type Metrics struct {
	polls        prometheus.Counter
	pollFailures prometheus.Counter
	pollDuration prometheus.Histogram
	dropped      prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, subscribers func() float64) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "limelight_polls_total",
			Help: "Results polls attempted",
		}),
		pollFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "limelight_poll_failures_total",
			Help: "Results polls that failed",
		}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "limelight_poll_duration_seconds",
			Help: "Results poll round-trip time",
			// The transport timeout is 100ms, so the buckets stop there.
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1},
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "limelight_results_dropped_total",
			Help: "Results dropped from slow subscriber buffers",
		}),
	}
	reg.MustRegister(m.polls, m.pollFailures, m.pollDuration, m.dropped)
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "limelight_subscribers",
		Help: "Active result subscribers",
	}, subscribers))
	return m
}

func (m *Metrics) observePoll(seconds float64, failed bool) {
	if m == nil {
		return
	}
	m.polls.Inc()
	m.pollDuration.Observe(seconds)
	if failed {
		m.pollFailures.Inc()
	}
}

func (m *Metrics) observeDrop() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}
