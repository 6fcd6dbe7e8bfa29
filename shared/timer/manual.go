package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler for tests. Time only moves when
// Advance is called; due callbacks run synchronously on the advancing
// goroutine, in deadline order, with insertion order breaking ties.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

func NewManual() *Manual {
	return &Manual{
		now: time.Unix(0, 0),
	}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &manualTimer{
		owner:    m,
		deadline: m.now.Add(d),
		fn:       fn,
	}

	// Binary search keeps pending sorted by deadline; equal deadlines
	// stay in insertion order.
	idx := sort.Search(len(m.pending), func(i int) bool {
		return mt.deadline.Before(m.pending[i].deadline)
	})
	m.pending = append(m.pending, nil)
	copy(m.pending[idx+1:], m.pending[idx:])
	m.pending[idx] = mt

	return mt
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the window. Callbacks may schedule or stop timers
// re-entrantly; timers they schedule fire in the same Advance call if due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)

	for {
		mt := m.popDueBefore(target)
		if mt == nil {
			break
		}
		m.now = mt.deadline
		mt.fired = true
		m.mu.Unlock()
		mt.fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// PendingCount reports the number of timers that are scheduled but have
// neither fired nor been stopped.
func (m *Manual) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// popDueBefore removes and returns the earliest pending timer with
// deadline <= target, or nil. Caller must hold mu.
func (m *Manual) popDueBefore(target time.Time) *manualTimer {
	if len(m.pending) == 0 || m.pending[0].deadline.After(target) {
		return nil
	}
	mt := m.pending[0]
	m.pending = m.pending[1:]
	return mt
}

type manualTimer struct {
	owner    *Manual
	deadline time.Time
	fn       func()
	fired    bool
	stopped  bool
}

func (mt *manualTimer) Stop() bool {
	mt.owner.mu.Lock()
	defer mt.owner.mu.Unlock()

	if mt.fired || mt.stopped {
		return false
	}
	mt.stopped = true
	for i, p := range mt.owner.pending {
		if p == mt {
			mt.owner.pending = append(mt.owner.pending[:i], mt.owner.pending[i+1:]...)
			break
		}
	}
	return true
}
