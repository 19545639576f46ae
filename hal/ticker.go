// Package hal abstracts the one genuinely platform-specific input the
// kernel depends on: a periodic timer interrupt. Real firmware derives
// this from a peripheral clock divisor (kernel_init's pclock_hz / 25600);
// a hosted Go process instead drives it from a time.Ticker, and tests
// drive it by hand through ManualTicker.
//
// Adapted from the teacher's clock.Clock, generalized from a single
// "what time is it" function into a periodic source of tick events,
// since the kernel needs a stream of interrupts rather than a clock
// reading.
package hal

import "time"

// Ticker delivers a tick event once per period until Stop is called.
type Ticker interface {
	// C returns the channel ticks are delivered on.
	C() <-chan time.Time
	// Stop releases any resources held by the ticker. Stop is idempotent.
	Stop()
}

// RealTicker drives ticks from a time.Ticker at a fixed period, derived
// the way kernel_init derives its timer divisor: given a peripheral clock
// frequency, the tick rate is pclock / 25600 Hz, matching the source's
// INIT_TIMER(pclock) macro.
type RealTicker struct {
	t *time.Ticker
}

// NewRealTicker starts a ticker that fires once every period.
func NewRealTicker(period time.Duration) *RealTicker {
	return &RealTicker{t: time.NewTicker(period)}
}

// PeriodFromClock derives a tick period from a peripheral clock frequency
// in Hz, mirroring kernel_init's pclock /= 25600 divisor.
func PeriodFromClock(pclockHz uint32) time.Duration {
	if pclockHz == 0 {
		return 0
	}
	rate := pclockHz / 25600
	if rate == 0 {
		rate = 1
	}
	return time.Second / time.Duration(rate)
}

func (r *RealTicker) C() <-chan time.Time { return r.t.C }
func (r *RealTicker) Stop()               { r.t.Stop() }

var _ Ticker = (*RealTicker)(nil)

// ManualTicker is a test fake stepped explicitly by calling Tick, useful
// for exercising the kernel's testable properties without depending on
// wall-clock scheduling jitter.
type ManualTicker struct {
	c chan time.Time
}

// NewManualTicker creates a ticker with no automatic advancement.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{c: make(chan time.Time, 1)}
}

// Tick delivers a single tick event, blocking until it is received if the
// channel's buffer is already full (i.e. a previous tick has not yet
// been consumed).
func (m *ManualTicker) Tick(at time.Time) {
	m.c <- at
}

func (m *ManualTicker) C() <-chan time.Time { return m.c }
func (m *ManualTicker) Stop()               {}

var _ Ticker = (*ManualTicker)(nil)
