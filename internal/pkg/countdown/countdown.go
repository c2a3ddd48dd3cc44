package countdown

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTick is the recomputation interval for an active countdown
const DefaultTick = time.Second

// Timer derives remaining time from an expiry timestamp on a single
// recurring tick and fires an expiry callback exactly once per crossing.
// A Timer is inert until Start is called with a non-nil expiry and
// active=true; restarting with changed inputs tears the previous tick down
// first, so at most one ticker ever runs.
type Timer struct {
	mu        sync.Mutex
	onExpired func()
	tick      time.Duration
	now       func() time.Time

	expiry    time.Time
	armed     bool
	running   bool
	expired   bool
	remaining time.Duration
	stop      chan struct{}
}

// New creates an inert countdown timer. onExpired may be nil.
func New(onExpired func()) *Timer {
	return &Timer{
		onExpired: onExpired,
		tick:      DefaultTick,
		now:       time.Now,
	}
}

// Start arms the countdown against the given expiry. A nil expiry or
// active=false stops any running tick and leaves the timer inert.
// Re-arming with an unchanged (expiry, active) pair is a no-op: the tick
// keeps running undisturbed and a crossing that already fired stays fired.
func (t *Timer) Start(expiry *time.Time, active bool) {
	t.mu.Lock()

	if expiry != nil && active && t.armed && t.expiry.Equal(*expiry) {
		t.mu.Unlock()
		return
	}

	t.stopLocked()

	if expiry == nil || !active {
		t.mu.Unlock()
		return
	}

	t.armed = true
	t.expiry = *expiry
	t.expired = false
	t.remaining = t.expiry.Sub(t.now())

	if t.remaining <= 0 {
		t.expired = true
		t.remaining = 0
		cb := t.onExpired
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
		return
	}

	stop := make(chan struct{})
	t.stop = stop
	t.running = true
	t.mu.Unlock()

	go t.run(stop)
}

func (t *Timer) run(stop chan struct{}) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if t.advance() {
				return
			}
		}
	}
}

// advance recomputes remaining time; returns true when the countdown
// crossed zero and the tick should halt.
func (t *Timer) advance() bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return true
	}

	t.remaining = t.expiry.Sub(t.now())
	if t.remaining > 0 {
		t.mu.Unlock()
		return false
	}

	t.remaining = 0
	t.running = false
	fire := !t.expired
	t.expired = true
	cb := t.onExpired
	t.mu.Unlock()

	if fire && cb != nil {
		cb()
	}
	return true
}

// Stop tears down the running tick, if any. The timer becomes inert.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
}

func (t *Timer) stopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.armed = false
	t.running = false
}

// Remaining returns the last computed remaining duration and whether the
// countdown is armed. An inert timer reports false.
func (t *Timer) Remaining() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running && !t.expired {
		return 0, false
	}
	return t.remaining, true
}

// Expired reports whether the countdown has crossed zero
func (t *Timer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

// Label formats the remaining time as zero-padded HH:MM:SS, floored and
// never negative. An inert timer returns an empty string.
func (t *Timer) Label() string {
	remaining, ok := t.Remaining()
	if !ok {
		return ""
	}
	return FormatLabel(remaining)
}

// FormatLabel converts a duration to a zero-padded HH:MM:SS label
func FormatLabel(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
