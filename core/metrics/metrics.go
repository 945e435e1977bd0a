// Package metrics defines the backend-neutral instruments the runtime
// reports through. Core packages depend only on these interfaces; the
// prometheus adapter provides a real implementation and the Nop
// constructors keep instrumentation optional.
package metrics

// Counter is a monotonically increasing value.
type Counter interface {
	Inc()
	Add(delta float64)
}

// Gauge is a value that can move in both directions.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// Histogram samples observations into buckets.
type Histogram interface {
	Observe(value float64)
}

// Timer records the elapsed time of one operation when ObserveDuration
// is called. Supports the deferred pattern:
//
//	defer m.TaskDuration().ObserveDuration()
type Timer interface {
	ObserveDuration()
}

type (
	nopCounter   struct{}
	nopGauge     struct{}
	nopHistogram struct{}
	nopTimer     struct{}
)

func (nopCounter) Inc()              {}
func (nopCounter) Add(float64)       {}
func (nopGauge) Set(float64)         {}
func (nopGauge) Inc()                {}
func (nopGauge) Dec()                {}
func (nopHistogram) Observe(float64) {}
func (nopTimer) ObserveDuration()    {}

// NopCounter returns a Counter that discards all observations.
func NopCounter() Counter { return nopCounter{} }

// NopGauge returns a Gauge that discards all observations.
func NopGauge() Gauge { return nopGauge{} }

// NopHistogram returns a Histogram that discards all observations.
func NopHistogram() Histogram { return nopHistogram{} }

// NopTimer returns a Timer that discards the observation.
func NopTimer() Timer { return nopTimer{} }
