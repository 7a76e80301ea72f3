package likes

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"sparkd/internal/bus"
)

// State is a simulator lifecycle state.
type State string

const (
	// Idle: no local profile exists; nothing is scheduled.
	Idle State = "IDLE"
	// Armed: a profile is present and the fire counter was reset.
	Armed State = "ARMED"
	// Scheduling: a timer is pending.
	Scheduling State = "SCHEDULING"
	// Fired: a candidate was just selected and recorded.
	Fired State = "FIRED"
	// Exhausted: the cap was reached or the pool ran dry; terminal until
	// the profile gate cycles.
	Exhausted State = "EXHAUSTED"
)

// validTransitions defines allowed state transitions. Every state can fall
// back to Idle when the gating profile is removed.
var validTransitions = map[State][]State{
	Idle:       {Armed},
	Armed:      {Scheduling, Idle},
	Scheduling: {Fired, Exhausted, Idle},
	Fired:      {Scheduling, Exhausted, Idle},
	Exhausted:  {Idle},
}

// Machine tracks and enforces simulator state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a machine starting in Idle.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{current: Idle, bus: b}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns an error if the
// transition is not allowed.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Publish(bus.Event{
			Kind:      bus.KindLikesState,
			Timestamp: time.Now(),
			Payload:   StateChange{From: from, To: to},
		})
	}
	return nil
}

// StateChange is the payload for simulator state change events.
type StateChange struct {
	From State
	To   State
}
