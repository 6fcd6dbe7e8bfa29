// Package stream provides channel pipeline operators for scopes that
// consume debounced values as streams rather than callbacks. Every
// operator spawns its goroutine through the concurrency effect, so a
// stream scope joins its operators on teardown.
package stream

import (
	"context"
	"time"

	"github.com/on-the-ground/hook_ive_go/effects/concurrency"
)

// Map forwards f(v) for every v of source into sink, closing sink when
// source closes.
func Map[T any, R any](ctx context.Context, source <-chan T, sink chan<- R, f func(T) R) {
	concurrency.Effect(ctx, func(ctx context.Context) {
		mapFn(ctx, source, sink, f)
	})
}

// Pipe forwards source into sink unchanged, closing sink when source
// closes.
func Pipe[T any](ctx context.Context, source <-chan T, sink chan<- T) {
	concurrency.Effect(ctx, func(ctx context.Context) {
		pipe(ctx, source, sink)
	})
}

// Filter forwards the values of source satisfying predicate into sink.
func Filter[T any](ctx context.Context, source <-chan T, sink chan<- T, predicate func(T) bool) {
	concurrency.Effect(ctx, func(ctx context.Context) {
		filter(ctx, source, sink, predicate)
	})
}

// Merge forwards every source into sink. Sink is not closed: the merge
// scope does not know when the last source is done.
func Merge[T any](ctx context.Context, sink chan<- T, sources ...<-chan T) {
	for _, source := range sources {
		source := source
		concurrency.Effect(ctx, func(ctx context.Context) {
			for v := range source {
				select {
				case sink <- v:
				case <-ctx.Done():
					return
				}
			}
		})
	}
}

// Debounce forwards the last value of every burst of source into sink: a
// value goes out once no newer value has arrived for delay. A pending
// value is dropped when source closes or the scope is canceled; nothing
// is emitted after teardown.
func Debounce[T any](ctx context.Context, source <-chan T, sink chan<- T, delay time.Duration) {
	concurrency.Effect(ctx, func(ctx context.Context) {
		defer close(sink)

		t := time.NewTimer(delay)
		stopTimer(t)
		defer t.Stop()

		var last T
		pending := false

		for {
			select {
			case v, ok := <-source:
				if !ok {
					return
				}
				last = v
				pending = true
				stopTimer(t)
				t.Reset(delay)

			case <-t.C:
				if !pending {
					continue
				}
				select {
				case sink <- last:
					pending = false
				case <-ctx.Done():
					return
				}

			case <-ctx.Done():
				return
			}
		}
	})
}

// stopTimer stops t and drains its channel so a Reset never races a stale
// tick.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func mapFn[T any, R any](ctx context.Context, source <-chan T, sink chan<- R, f func(T) R) {
	defer close(sink)
	for v := range source {
		select {
		case sink <- f(v):
		case <-ctx.Done():
			return
		}
	}
}

func pipe[T any](ctx context.Context, source <-chan T, sink chan<- T) {
	defer close(sink)
	for v := range source {
		select {
		case sink <- v:
		case <-ctx.Done():
			return
		}
	}
}

func filter[T any](ctx context.Context, source <-chan T, sink chan<- T, predicate func(T) bool) {
	defer close(sink)
	for v := range source {
		if !predicate(v) {
			continue
		}
		select {
		case sink <- v:
		case <-ctx.Done():
			return
		}
	}
}
