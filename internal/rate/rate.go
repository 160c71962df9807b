// Package rate estimates throughput and time remaining from a bounded
// history of progress samples.
package rate

import (
	"math"
	"time"
)

// DefaultCapacity bounds the sample history to roughly the last two
// minutes of activity at the standard one-second refresh interval.
const DefaultCapacity = 120

// Sample is one observation of progress at a point in time.
type Sample struct {
	Progress   int
	UnixMillis int64
}

// Window is a fixed-capacity ring of samples, oldest-first. Once full,
// each push overwrites the current oldest slot. A window is never empty:
// it is seeded with one sample at construction.
type Window struct {
	samples []Sample
	oldest  int
	count   int
}

// NewWindow creates a window of the given capacity seeded with one sample.
func NewWindow(capacity int, seed Sample) *Window {
	if capacity < 1 {
		capacity = 1
	}
	w := &Window{samples: make([]Sample, capacity)}
	w.Push(seed)
	return w
}

// Push records a sample, evicting the oldest one when the window is full.
func (w *Window) Push(s Sample) {
	if w.count < len(w.samples) {
		w.samples[(w.oldest+w.count)%len(w.samples)] = s
		w.count++
		return
	}
	w.samples[w.oldest] = s
	w.oldest = (w.oldest + 1) % len(w.samples)
}

// Oldest returns the oldest retained sample.
func (w *Window) Oldest() Sample {
	return w.samples[w.oldest]
}

// Len returns the number of retained samples.
func (w *Window) Len() int {
	return w.count
}

// Estimate is the derived speed and time remaining for one observation.
// ETA is in seconds and may be +Inf: an unknown total, or zero throughput
// with work outstanding, both report an unbounded ETA.
type Estimate struct {
	Speed float64
	ETA   float64
}

// Estimator derives speed and ETA by comparing the current progress
// against the oldest sample retained in its window.
type Estimator struct {
	window *Window
	clock  func() time.Time
}

// NewEstimator creates an estimator whose window is seeded with a
// progress-zero sample taken now.
func NewEstimator(capacity int) *Estimator {
	return NewEstimatorWithClock(capacity, time.Now)
}

// NewEstimatorWithClock is NewEstimator with an injectable clock.
func NewEstimatorWithClock(capacity int, clock func() time.Time) *Estimator {
	now := clock().UnixMilli()
	return &Estimator{
		window: NewWindow(capacity, Sample{Progress: 0, UnixMillis: now}),
		clock:  clock,
	}
}

// Sample computes the estimate for the current progress and then records
// it. The estimate is always taken against the pre-push oldest sample, so
// speed is averaged over the span the window covers. A total < 1 means
// the total is unknown and the ETA is unbounded.
func (e *Estimator) Sample(progress, total int) Estimate {
	now := e.clock().UnixMilli()
	oldest := e.window.Oldest()

	elapsed := now - oldest.UnixMillis
	if elapsed < 1 {
		elapsed = 1
	}
	speed := float64(progress-oldest.Progress) * 1000 / float64(elapsed)

	var eta float64
	switch {
	case total >= 1 && progress == total:
		// Completion always reports zero remaining, even at zero speed.
		eta = 0
	case total < 1:
		eta = math.Inf(1)
	default:
		eta = float64(total-progress) / speed
	}

	e.window.Push(Sample{Progress: progress, UnixMillis: now})
	return Estimate{Speed: speed, ETA: eta}
}
