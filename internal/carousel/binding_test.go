package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAutoAdvanceSimulatedTime(t *testing.T) {
	clock := NewManualClock(epoch)
	e, err := New([]string{"a", "b", "c"}, Options{AutoAdvance: 3000 * time.Millisecond})
	require.NoError(t, err)

	ticks := 0
	e.Subscribe(func(State) { ticks++ })

	b := Bind(e, clock)
	defer b.Dispose()

	clock.Advance(7000 * time.Millisecond)

	require.Equal(t, 2, ticks)
	require.Equal(t, 2, e.State().Index)
	require.Equal(t, "c", e.State().Image)
}

func TestAutoAdvanceSpreadAcrossAdvances(t *testing.T) {
	clock := NewManualClock(epoch)
	e, err := New([]string{"a", "b", "c", "d"}, Options{AutoAdvance: 4 * time.Second})
	require.NoError(t, err)
	b := Bind(e, clock)
	defer b.Dispose()

	clock.Advance(3 * time.Second)
	require.Equal(t, 0, e.State().Index)

	clock.Advance(time.Second)
	require.Equal(t, 1, e.State().Index)

	clock.Advance(8 * time.Second)
	require.Equal(t, 3, e.State().Index)
}

func TestNoAutoAdvanceWhenDisabled(t *testing.T) {
	clock := NewManualClock(epoch)
	e, err := New([]string{"a", "b"}, Options{})
	require.NoError(t, err)

	b := Bind(e, clock)
	require.Equal(t, 0, clock.Pending())

	clock.Advance(time.Hour)
	require.Equal(t, 0, e.State().Index)
	b.Dispose()
}

func TestDisposeCancelsTimer(t *testing.T) {
	clock := NewManualClock(epoch)
	e, err := New([]string{"a", "b", "c"}, Options{AutoAdvance: time.Second})
	require.NoError(t, err)

	b := Bind(e, clock)
	clock.Advance(time.Second)
	require.Equal(t, 1, e.State().Index)

	b.Dispose()
	b.Dispose()
	require.Equal(t, 0, clock.Pending())
	require.True(t, e.Disposed())

	clock.Advance(10 * time.Second)
	require.Equal(t, 1, e.State().Index)
}

func TestTickAfterDisposeIsIgnored(t *testing.T) {
	// A tick racing teardown fires after Dispose.
	var fire func()
	clock := clockFunc(func(d time.Duration, fn func()) func() {
		fire = fn
		return func() {}
	})

	e, err := New([]string{"a", "b"}, Options{AutoAdvance: time.Second})
	require.NoError(t, err)
	b := Bind(e, clock)
	b.Dispose()

	fire()
	require.Equal(t, 0, e.State().Index)
}

func TestManualAndTimerInterleave(t *testing.T) {
	clock := NewManualClock(epoch)
	e, err := New([]string{"a", "b", "c"}, Options{AutoAdvance: 3 * time.Second})
	require.NoError(t, err)
	b := Bind(e, clock)
	defer b.Dispose()

	clock.Advance(2 * time.Second)
	e.Previous()
	require.Equal(t, 2, e.State().Index)

	clock.Advance(time.Second)
	require.Equal(t, 0, e.State().Index)
}

func TestSystemClockStop(t *testing.T) {
	fired := make(chan struct{}, 16)
	stop := SystemClock().Every(5*time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("system clock never fired")
	}
	stop()
	stop()
}

func TestManualClockIgnoresNonPositivePeriod(t *testing.T) {
	clock := NewManualClock(epoch)
	fired := 0
	for _, d := range []time.Duration{0, -time.Second} {
		stop := clock.Every(d, func() { fired++ })
		stop()
	}
	require.Zero(t, clock.Pending())

	clock.Advance(time.Minute)
	require.Zero(t, fired)
	require.Equal(t, epoch.Add(time.Minute), clock.Now())
}

type clockFunc func(d time.Duration, fn func()) func()

func (f clockFunc) Every(d time.Duration, fn func()) func() { return f(d, fn) }
