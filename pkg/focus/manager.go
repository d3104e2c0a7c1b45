// Package focus tracks which page element owns keyboard focus.
//
// The manager is a registry of focus IDs in tab order. Elements register when
// they appear on screen and unregister when they go away, so a stale ID can be
// detected before focus is handed back to it.
package focus

import (
	"slices"
	"sync"
)

// Manager is safe for concurrent use. The UI loop is the only writer in
// practice, but views and commands may read from other goroutines.
type Manager struct {
	mu      sync.RWMutex
	order   []string
	current string
}

// NewManager returns a manager with the given targets registered in order.
func NewManager(ids ...string) *Manager {
	m := &Manager{}
	for _, id := range ids {
		m.Register(id)
	}
	return m
}

// Register appends id to the tab order. Registering twice is a no-op.
func (m *Manager) Register(id string) {
	if id == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.order, id) {
		return
	}
	m.order = append(m.order, id)
}

// Unregister removes id. If it held focus, nothing is focused afterwards.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	if m.current == id {
		m.current = ""
	}
}

// Has reports whether id is registered.
func (m *Manager) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(m.order, id)
}

// Focus moves focus to id. Unknown IDs are rejected and leave focus as is.
func (m *Manager) Focus(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.order, id) {
		return false
	}
	m.current = id
	return true
}

// Current returns the focused ID, or "" when nothing has focus.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Blur clears focus.
func (m *Manager) Blur() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = ""
}

// Next moves focus forward, wrapping at the end. With nothing focused the
// first target is chosen.
func (m *Manager) Next() string {
	return m.step(1)
}

// Prev moves focus backward, wrapping at the start.
func (m *Manager) Prev() string {
	return m.step(-1)
}

func (m *Manager) step(delta int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.order)
	if n == 0 {
		return ""
	}
	idx := slices.Index(m.order, m.current)
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + delta + n) % n
	}
	m.current = m.order[idx]
	return m.current
}

// IDs returns a copy of the registered IDs in tab order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}
