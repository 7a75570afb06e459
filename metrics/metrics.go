// Package metrics defines the instrumentation surface for request counts and
// flow latencies.
package metrics

import "time"

// Recorder receives request events and flow timings from the bridge.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
