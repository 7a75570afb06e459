package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

func NewPrometheusRecorder() Recorder {
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "realium",
			Subsystem: "bridge",
			Name:      "events_total",
			Help:      "bridge event counters",
		},
		[]string{"event", "type"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "realium",
			Subsystem: "bridge",
			Name:      "latency_seconds",
			Help:      "bridge flow latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "flow"},
	)

	prometheus.MustRegister(counters, histogram)

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
	}
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.counters.With(prometheus.Labels{
		"event": name,
		"type":  labels["type"],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation": name,
		"flow":      labels["flow"],
	}).Observe(d.Seconds())
}
