// Package timer abstracts the host timer primitive behind a Scheduler so
// debounce scopes can run on the system clock in production and on a
// deterministic manual clock in tests.
package timer

import "time"

// Token is a cancelable handle for one scheduled callback.
type Token interface {
	// Stop cancels the pending callback. It reports false if the callback
	// already fired or the token was stopped before. Stopping a fired or
	// already-stopped token is a no-op, never an error.
	Stop() bool
}

// Scheduler schedules a callback to run once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Token
	Now() time.Time
}

// System returns a Scheduler backed by the runtime timers.
func System() Scheduler {
	return systemScheduler{}
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Token {
	return systemToken{timer: time.AfterFunc(d, fn)}
}

func (systemScheduler) Now() time.Time {
	return time.Now()
}

type systemToken struct {
	timer *time.Timer
}

func (t systemToken) Stop() bool {
	return t.timer.Stop()
}
