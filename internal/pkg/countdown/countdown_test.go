package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_InertWithoutExpiry(t *testing.T) {
	timer := New(func() {
		t.Error("onExpired must not fire for an inert timer")
	})

	timer.Start(nil, true)
	_, ok := timer.Remaining()
	assert.False(t, ok)
	assert.Equal(t, "", timer.Label())

	expiry := time.Now().Add(time.Hour)
	timer.Start(&expiry, false)
	_, ok = timer.Remaining()
	assert.False(t, ok)

	timer.Stop()
}

func TestTimer_RemainingDecreasesMonotonically(t *testing.T) {
	var fired int32
	timer := New(func() {
		atomic.AddInt32(&fired, 1)
	})
	timer.tick = 10 * time.Millisecond

	expiry := time.Now().Add(60 * time.Millisecond)
	timer.Start(&expiry, true)
	defer timer.Stop()

	prev, ok := timer.Remaining()
	require.True(t, ok)
	require.Greater(t, prev, time.Duration(0))

	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		time.Sleep(15 * time.Millisecond)
		remaining, ok := timer.Remaining()
		require.True(t, ok)
		assert.LessOrEqual(t, remaining, prev)
		prev = remaining
		if timer.Expired() {
			break
		}
	}

	require.True(t, timer.Expired())
	assert.Equal(t, time.Duration(0), prev)

	// Extra ticks after the crossing must not re-fire the callback.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestTimer_AlreadyPastExpiryFiresImmediately(t *testing.T) {
	var fired int32
	timer := New(func() {
		atomic.AddInt32(&fired, 1)
	})

	expiry := time.Now().Add(-time.Second)
	timer.Start(&expiry, true)

	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.True(t, timer.Expired())
	assert.Equal(t, "00:00:00", timer.Label())
}

func TestTimer_RestartTearsDownPreviousTick(t *testing.T) {
	var fired int32
	timer := New(func() {
		atomic.AddInt32(&fired, 1)
	})
	timer.tick = 10 * time.Millisecond

	first := time.Now().Add(30 * time.Millisecond)
	timer.Start(&first, true)

	// Re-arm against a far future expiry before the first crossing.
	second := time.Now().Add(time.Hour)
	timer.Start(&second, true)
	defer timer.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	assert.False(t, timer.Expired())
}

func TestTimer_RearmUnchangedInputsDoesNotRefire(t *testing.T) {
	var fired int32
	timer := New(func() {
		atomic.AddInt32(&fired, 1)
	})

	expiry := time.Now().Add(-time.Second)
	timer.Start(&expiry, true)
	timer.Start(&expiry, true)
	timer.Start(&expiry, true)

	// The crossing fired on the first arm only; identical re-arms keep
	// the latch.
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.True(t, timer.Expired())
}

func TestTimer_RearmChangedExpiryResetsLatch(t *testing.T) {
	var fired int32
	timer := New(func() {
		atomic.AddInt32(&fired, 1)
	})

	first := time.Now().Add(-2 * time.Second)
	timer.Start(&first, true)
	require.Equal(t, int32(1), atomic.LoadInt32(&fired))

	second := time.Now().Add(-time.Second)
	timer.Start(&second, true)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestTimer_RearmAfterStopFiresAgain(t *testing.T) {
	var fired int32
	timer := New(func() {
		atomic.AddInt32(&fired, 1)
	})

	expiry := time.Now().Add(-time.Second)
	timer.Start(&expiry, true)
	require.Equal(t, int32(1), atomic.LoadInt32(&fired))

	timer.Stop()
	timer.Start(&expiry, true)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "zero", duration: 0, expected: "00:00:00"},
		{name: "negative is clamped", duration: -5 * time.Second, expected: "00:00:00"},
		{name: "seconds only", duration: 42 * time.Second, expected: "00:00:42"},
		{name: "sub-second floors to zero", duration: 900 * time.Millisecond, expected: "00:00:00"},
		{name: "minutes and seconds", duration: 5*time.Minute + 7*time.Second, expected: "00:05:07"},
		{name: "hours", duration: 23*time.Hour + 59*time.Minute + 59*time.Second, expected: "23:59:59"},
		{name: "floored partial second", duration: 61*time.Second + 400*time.Millisecond, expected: "00:01:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLabel(tt.duration))
		})
	}
}
