package memo

import (
	"context"

	"github.com/on-the-ground/hook_ive_go/pure"
)

// Payload is a sealed interface for memo operations.
// Only predefined payload types (Compute, Invalidate) can implement this interface.
type Payload interface {
	PartitionKey() string
	payload()
}

// Compute asks the handler for the value of the computation identified by
// Key: cached when Deps match the stored entry, recomputed otherwise.
//
// Fn must be synchronous. To memoize an asynchronous computation, make Fn
// return the result channel (see effects/task): the channel is the
// memoized value, never the resolved result.
type Compute[R any] struct {
	Key  string
	Deps []pure.DepKey
	Fn   func(context.Context) (R, error)
}

func NewCompute[R any](key string, deps []pure.DepKey, fn func(context.Context) (R, error)) Payload {
	return Compute[R]{Key: key, Deps: deps, Fn: fn}
}

func (p Compute[R]) PartitionKey() string { return p.Key }

// payload prevents external packages from implementing Payload.
func (p Compute[R]) payload() {}

// run implements computer for handler dispatch without knowing R.
// On a dependency hit the stored entry is returned as-is. On a compute
// error the previous entry is reported unchanged so the store is never
// poisoned; the error goes back to the caller untouched.
func (p Compute[R]) run(ctx context.Context, prev Entry, hit bool) (next Entry, val any, recomputed bool, err error) {
	if hit && pure.SameDeps(prev.Deps, p.Deps) {
		return prev, prev.Value, false, nil
	}

	v, err := p.Fn(ctx)
	if err != nil {
		return prev, nil, false, err
	}

	next = Entry{
		Deps:  append([]pure.DepKey(nil), p.Deps...),
		Value: v,
	}
	return next, v, true, nil
}

// computer is the non-generic view of Compute the handler dispatches on.
type computer interface {
	Payload
	run(ctx context.Context, prev Entry, hit bool) (Entry, any, bool, error)
}

var _ computer = Compute[any]{}

var _ Payload = Invalidate{}

// Invalidate drops the stored entry for Key; the next Compute recomputes
// regardless of deps.
type Invalidate struct {
	Key string
}

func NewInvalidate(key string) Payload {
	return Invalidate{Key: key}
}

func (p Invalidate) PartitionKey() string { return p.Key }
func (p Invalidate) payload()             {}

// Entry is one stored memoization slot: the dependency keys of the last
// successful computation and the value they produced. Entries are
// replaced all-or-nothing.
type Entry struct {
	Deps  []pure.DepKey
	Value any
}
