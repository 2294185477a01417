package expiry

import (
	"sync"
	"time"
)

// Interval is the countdown resolution.
const Interval = time.Second

// State of a Monitor.
type State int

const (
	Running State = iota
	Expired
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Expired:
		return "expired"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// TickerFunc starts a ticker firing every d. stop releases it.
type TickerFunc func(d time.Duration) (c <-chan time.Time, stop func())

func stdTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

type Option func(m *Monitor)

// WithTicker replaces the wall clock ticker.
func WithTicker(fn TickerFunc) Option {
	return func(m *Monitor) { m.newTicker = fn }
}

// Monitor counts a duration down one Interval at a time and signals expiry exactly once.
type Monitor struct {
	mu        sync.Mutex
	total     time.Duration
	remaining time.Duration
	state     State
	started   bool

	onExpire  func()
	fireOnce  sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
	newTicker TickerFunc
}

// New returns a Running monitor for d. onExpire may be nil.
func New(d time.Duration, onExpire func(), opts ...Option) *Monitor {
	if d < 0 {
		d = 0
	}
	m := &Monitor{
		total:     d,
		remaining: d,
		state:     Running,
		onExpire:  onExpire,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		newTicker: stdTicker,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start runs the countdown on its own goroutine. Calling it more than once is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.started || m.state != Running {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	c, stopTicker := m.newTicker(Interval)
	go func() {
		defer stopTicker()
		for {
			select {
			case <-m.stop:
				return
			case <-c:
				if m.Tick() != Running {
					return
				}
			}
		}
	}()
}

// Tick advances the countdown by one Interval and returns the resulting state.
// Ticks after expiry or Stop are ignored.
func (m *Monitor) Tick() State {
	m.mu.Lock()
	if m.state != Running {
		st := m.state
		m.mu.Unlock()
		return st
	}
	m.remaining -= Interval
	if m.remaining > 0 {
		m.mu.Unlock()
		return Running
	}
	m.remaining = 0
	m.state = Expired
	m.mu.Unlock()

	m.fire()
	return Expired
}

func (m *Monitor) fire() {
	m.fireOnce.Do(func() {
		close(m.done)
		if m.onExpire != nil {
			m.onExpire()
		}
	})
}

// Stop cancels the countdown. A stopped monitor never fires.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.state == Running {
		m.state = Stopped
	}
	m.mu.Unlock()
	m.stopOnce.Do(func() { close(m.stop) })
}

// Done is closed when the monitor expires.
func (m *Monitor) Done() <-chan struct{} { return m.done }

func (m *Monitor) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remaining
}

// Elapsed returns how much of the duration has been consumed.
func (m *Monitor) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total - m.remaining
}

func (m *Monitor) Duration() time.Duration { return m.total }

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
