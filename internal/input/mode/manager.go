package mode

import "sync"

// ChangeFunc is called when the mode changes.
type ChangeFunc func(from, to Mode)

// Manager holds the current mode of one session and notifies observers of
// committed transitions.
type Manager struct {
	mu sync.RWMutex

	current  Mode
	previous Mode

	// callbacks are notified on mode changes; unregistered slots are nil.
	callbacks []ChangeFunc
}

// NewManager creates a manager in normal mode.
func NewManager() *Manager {
	return &Manager{current: Normal(), previous: Normal()}
}

// Current returns the current mode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the mode before the last transition.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Is returns true if the current mode equals mode.
func (m *Manager) Is(mode Mode) bool {
	return m.Current() == mode
}

// IsAny returns true if the current mode is of any of the given kinds.
func (m *Manager) IsAny(kinds ...Kind) bool {
	cur := m.Current().Kind()
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// Set commits a transition to mode and notifies observers.
// It reports whether the mode actually changed; setting the current mode
// again is not a transition and notifies nobody.
func (m *Manager) Set(mode Mode) bool {
	m.mu.Lock()
	old := m.current
	if old == mode {
		m.mu.Unlock()
		return false
	}
	m.previous = old
	m.current = mode

	// Copy callbacks to call outside of lock
	callbacks := make([]ChangeFunc, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(old, mode)
		}
	}
	return true
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

// Change is a committed mode transition.
type Change struct {
	From Mode
	To   Mode
}

// ChannelSink returns a ChangeFunc that forwards transitions to ch.
// When ch is full the change is dropped so the transition never blocks.
func ChannelSink(ch chan<- Change) ChangeFunc {
	return func(from, to Mode) {
		select {
		case ch <- Change{From: from, To: to}:
		default:
		}
	}
}
