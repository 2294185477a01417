package expiry

import (
	"fmt"
	"time"
)

const (
	warningThreshold  = 180 * time.Second
	criticalThreshold = 60 * time.Second
)

// Urgency classifies how close a countdown is to expiry.
type Urgency int

const (
	Normal Urgency = iota
	Warning
	Critical
)

func (u Urgency) String() string {
	switch u {
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	}
	return "normal"
}

func (u Urgency) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func UrgencyOf(remaining time.Duration) Urgency {
	switch {
	case remaining < criticalThreshold:
		return Critical
	case remaining < warningThreshold:
		return Warning
	}
	return Normal
}

// Format renders remaining as MM:SS.
func Format(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	secs := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// View is the presentation of a countdown.
type View struct {
	State     State   `json:"state"`
	Remaining int     `json:"remaining_seconds"`
	Display   string  `json:"display"`
	Urgency   Urgency `json:"urgency"`
}

func (m *Monitor) View() View {
	m.mu.Lock()
	remaining, state := m.remaining, m.state
	m.mu.Unlock()
	return View{
		State:     state,
		Remaining: int(remaining / time.Second),
		Display:   Format(remaining),
		Urgency:   UrgencyOf(remaining),
	}
}
