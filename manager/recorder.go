// Package manager: bounded in-memory recorder.
package manager

import (
	"sync"

	"github.com/katalvlaran/icefloe/solver"
)

// DefaultRecorderCapacity bounds MemoryRecorder rings created by
// NewMemoryRecorder with a non-positive capacity.
const DefaultRecorderCapacity = 4096

// MemoryRecorder keeps the most recent attempt and episode records in
// fixed-size rings. Safe for concurrent use.
type MemoryRecorder struct {
	mu       sync.RWMutex
	cap      int
	attempts []solver.Attempt
	episodes []Episode
}

// NewMemoryRecorder builds a recorder retaining at most capacity records
// of each kind; capacity ≤ 0 falls back to DefaultRecorderCapacity.
func NewMemoryRecorder(capacity int) *MemoryRecorder {
	if capacity <= 0 {
		capacity = DefaultRecorderCapacity
	}

	return &MemoryRecorder{cap: capacity}
}

// RecordAttempt appends one attempt record, evicting the oldest at cap.
func (m *MemoryRecorder) RecordAttempt(a solver.Attempt) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.attempts) == m.cap {
		m.attempts = m.attempts[1:]
	}
	m.attempts = append(m.attempts, a)
}

// RecordEpisode appends one episode record, evicting the oldest at cap.
func (m *MemoryRecorder) RecordEpisode(e Episode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.episodes) == m.cap {
		m.episodes = m.episodes[1:]
	}
	m.episodes = append(m.episodes, e)
}

// Attempts returns a copy of the retained attempt records, oldest first.
func (m *MemoryRecorder) Attempts() []solver.Attempt {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]solver.Attempt, len(m.attempts))
	copy(out, m.attempts)

	return out
}

// Episodes returns a copy of the retained episode records, oldest first.
func (m *MemoryRecorder) Episodes() []Episode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Episode, len(m.episodes))
	copy(out, m.episodes)

	return out
}
