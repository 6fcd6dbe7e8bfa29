package debounce

import (
	"sync"
	"time"

	"github.com/on-the-ground/hook_ive_go/effects"
	"github.com/on-the-ground/hook_ive_go/shared/timer"
)

// Debouncer collapses a burst of inputs into a single trailing-edge
// emission of the last value. State machine: Idle and Pending. An input
// always moves the debouncer to Pending, canceling the outstanding timer
// if there is one; a timer fire or a cancel moves it back to Idle.
//
// At most one timer is outstanding at any time. There is no leading-edge
// emission.
//
// The mutex is held while emit runs, which is what guarantees that emit
// never fires after Dispose. emit therefore must not call back into the
// Debouncer.
type Debouncer[T any] struct {
	mu    sync.Mutex
	sched timer.Scheduler
	delay time.Duration
	emit  func(T)

	pending    T
	hasPending bool
	seq        uint64
	token      timer.Token
	deadline   effects.TimeSpan
	disposed   bool
}

// New returns a Debouncer that calls emit with the latest input once no
// new input has arrived for delay. A nil sched uses the system clock.
func New[T any](sched timer.Scheduler, delay time.Duration, emit func(T)) *Debouncer[T] {
	if sched == nil {
		sched = timer.System()
	}
	if emit == nil {
		panic("debounce: emit must not be nil")
	}
	return &Debouncer[T]{
		sched: sched,
		delay: delay,
		emit:  emit,
	}
}

// OnInput records v as the value to emit and restarts the delay window.
// Inputs arriving after Dispose are dropped.
func (d *Debouncer[T]) OnInput(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return
	}

	d.stopToken()
	d.seq++
	seq := d.seq
	d.pending = v
	d.hasPending = true
	d.deadline = effects.TimeSpanAround(d.sched.Now().Add(d.delay))
	d.token = d.sched.AfterFunc(d.delay, func() {
		d.fire(seq)
	})
}

// Cancel drops the pending value, if any, without emitting. Canceling an
// Idle debouncer is a no-op.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopToken()
	d.clearPending()
}

// Dispose cancels any outstanding timer and permanently stops the
// debouncer: emit never fires afterwards. Calling Dispose more than once
// is a no-op.
func (d *Debouncer[T]) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return
	}
	d.disposed = true
	d.stopToken()
	d.clearPending()
}

// Pending reports whether a timer is outstanding.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending
}

// Deadline returns the time span around the expected fire instant of the
// outstanding timer, if any.
func (d *Debouncer[T]) Deadline() (effects.TimeSpan, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deadline, d.hasPending
}

func (d *Debouncer[T]) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// SetDelay changes the delay for subsequently scheduled timers. An
// already-scheduled deadline is not altered; since every input
// reschedules, the new delay applies from the next input.
func (d *Debouncer[T]) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

// fire runs on the scheduler goroutine. Fires carrying a superseded
// sequence number lost the race against a newer input or a cancel and are
// dropped.
func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed || seq != d.seq || !d.hasPending {
		return
	}

	v := d.pending
	d.clearPending()
	d.emit(v)
}

// stopToken cancels the outstanding timer if there is one. Stopping a
// fired or absent timer is a no-op. Caller must hold mu.
func (d *Debouncer[T]) stopToken() {
	if d.token != nil {
		d.token.Stop()
		d.token = nil
	}
}

// clearPending resets the cell to Idle. Caller must hold mu.
func (d *Debouncer[T]) clearPending() {
	var zero T
	d.pending = zero
	d.hasPending = false
	d.token = nil
}
