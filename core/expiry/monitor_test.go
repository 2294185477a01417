package expiry

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicker hands out a channel the test drives.
type manualTicker struct {
	c       chan time.Time
	stopped int32
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time)}
}

func (mt *manualTicker) fn(time.Duration) (<-chan time.Time, func()) {
	return mt.c, func() { atomic.StoreInt32(&mt.stopped, 1) }
}

func TestMonitor_FiveTicksSignalOnce(t *testing.T) {
	var signals int32
	m := New(5*time.Second, func() { atomic.AddInt32(&signals, 1) })

	var transitions int
	for i := 0; i < 5; i++ {
		before := m.State()
		after := m.Tick()
		if before == Running && after == Expired {
			transitions++
		}
	}
	// extra ticks at zero
	m.Tick()
	m.Tick()

	assert.Equal(t, 1, transitions)
	assert.Equal(t, int32(1), atomic.LoadInt32(&signals))
	assert.Equal(t, Expired, m.State())
	assert.Equal(t, time.Duration(0), m.Remaining())
	assert.Equal(t, 5*time.Second, m.Elapsed())
}

func TestMonitor_ConcurrentTicksAtZero(t *testing.T) {
	var signals int32
	m := New(3*time.Second, func() { atomic.AddInt32(&signals, 1) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Tick()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&signals))
	select {
	case <-m.Done():
	default:
		t.Fatal("Done() not closed after expiry")
	}
}

func TestMonitor_Stop(t *testing.T) {
	var signals int32
	m := New(2*time.Second, func() { atomic.AddInt32(&signals, 1) })

	m.Tick()
	m.Stop()
	m.Stop()
	assert.Equal(t, Stopped, m.Tick())
	assert.Equal(t, Stopped, m.Tick())

	assert.Equal(t, int32(0), atomic.LoadInt32(&signals))
	assert.Equal(t, time.Second, m.Remaining())
}

func TestMonitor_StartDrivesTicks(t *testing.T) {
	mt := newManualTicker()
	expired := make(chan struct{})
	m := New(2*time.Second, func() { close(expired) }, WithTicker(mt.fn))
	m.Start()
	m.Start() // no-op

	mt.c <- time.Now()
	require.Eventually(t, func() bool { return m.Remaining() == time.Second }, time.Second, 5*time.Millisecond)
	mt.c <- time.Now()

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("monitor did not expire")
	}
	assert.Equal(t, Expired, m.State())
	require.Eventually(t, func() bool { return atomic.LoadInt32(&mt.stopped) == 1 }, time.Second, 5*time.Millisecond)
}

func TestMonitor_StopReleasesTicker(t *testing.T) {
	mt := newManualTicker()
	m := New(time.Minute, nil, WithTicker(mt.fn))
	m.Start()
	m.Stop()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&mt.stopped) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, Stopped, m.State())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      string
		urgency   Urgency
	}{
		{15 * time.Minute, "15:00", Normal},
		{3 * time.Minute, "03:00", Normal},
		{179 * time.Second, "02:59", Warning},
		{60 * time.Second, "01:00", Warning},
		{59 * time.Second, "00:59", Critical},
		{0, "00:00", Critical},
		{-time.Second, "00:00", Critical},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.remaining))
			assert.Equal(t, tt.urgency, UrgencyOf(tt.remaining))
		})
	}
}

func TestMonitor_View(t *testing.T) {
	m := New(61*time.Second, nil)
	m.Tick()
	v := m.View()

	assert.Equal(t, View{State: Running, Remaining: 60, Display: "01:00", Urgency: Warning}, v)
}
