// Package metrics provides backend-neutral metric primitives so that the
// engine can be instrumented without importing a metrics library.
// Adapters (see adapters/prometheus) supply the real implementations.
package metrics

import "time"

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
type Timer interface {
	ObserveDuration()
}

// ObserverFunc records a single duration sample in seconds.
type ObserverFunc func(seconds float64)

type funcTimer struct {
	observe ObserverFunc
	start   time.Time
}

func (t funcTimer) ObserveDuration() { t.observe(time.Since(t.start).Seconds()) }

// NewTimer starts a Timer that reports to observe. A nil observe yields a
// no-op Timer.
func NewTimer(observe ObserverFunc) Timer {
	if observe == nil {
		return nopTimer{}
	}
	return funcTimer{observe: observe, start: time.Now()}
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

// NopTimer returns a no-op Timer.
func NopTimer() Timer { return nopTimer{} }
