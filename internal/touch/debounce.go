package touch

import "time"

// DefaultDebounce is the hold-off after a processed press.
const DefaultDebounce = 200 * time.Millisecond

// Clock supplies the current time to the debounce policy.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Debouncer ignores samples for Interval after each processed press. It never
// sleeps; callers keep polling and drop samples while Ready is false.
type Debouncer struct {
	Interval time.Duration
	Clock    Clock

	until time.Time
}

// NewDebouncer returns a debouncer on clock. A nil clock means SystemClock
// and a zero interval means DefaultDebounce.
func NewDebouncer(interval time.Duration, clock Clock) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Debouncer{Interval: interval, Clock: clock}
}

// Mark starts the hold-off window.
func (d *Debouncer) Mark() {
	d.until = d.clock().Now().Add(d.Interval)
}

// Ready reports whether the hold-off window has elapsed.
func (d *Debouncer) Ready() bool {
	return !d.clock().Now().Before(d.until)
}

func (d *Debouncer) clock() Clock {
	if d.Clock == nil {
		return SystemClock{}
	}
	return d.Clock
}
