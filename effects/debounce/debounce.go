package debounce

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/on-the-ground/hook_ive_go/effects"
	effectmodel "github.com/on-the-ground/hook_ive_go/effects/internal/model"
	"github.com/on-the-ground/hook_ive_go/effects/log"
	"github.com/on-the-ground/hook_ive_go/shared/timer"
)

// WithEffectHandler registers a fire-and-forget, partitionable effect
// handler for trailing-edge debouncing. Every distinct payload key owns
// its own Debouncer, so one handler serves any number of logical
// debouncers (one per search box, one per watched file, ...), with inputs
// for the same key serialized on the same worker.
//
//   - emit receives one Emission per quiet burst, carrying the last value.
//   - A nil sched uses the system clock.
//   - Returns a context with the effect handler registered and a teardown
//     function. Teardown disposes every per-key debouncer before closing
//     the scope: no emission ever fires after teardown.
//   - The teardown function should be called when the effect handler is no
//     longer needed; use the context it returns for further operations.
func WithEffectHandler[T any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	delay time.Duration,
	sched timer.Scheduler,
	emit func(context.Context, Emission[T]),
) (context.Context, func() context.Context) {
	if sched == nil {
		sched = timer.System()
	}
	h := &debounceHandler[T]{
		sched: sched,
		delay: delay,
		emit:  emit,
		cells: &sync.Map{},
	}
	return effects.WithFireAndForgetPartitionableEffectHandler(
		ctx,
		config,
		effectmodel.EffectDebounce,
		h.handle,
		h.disposeAll,
	)
}

// Effect submits one input for the logical debouncer identified by key.
func Effect[T any](ctx context.Context, key string, value T) {
	effects.FireAndForgetEffect[Payload](ctx, effectmodel.EffectDebounce, Input[T]{Key: key, Value: value})
}

// CancelEffect drops the pending value for key without emitting.
func CancelEffect(ctx context.Context, key string) {
	effects.FireAndForgetEffect[Payload](ctx, effectmodel.EffectDebounce, CancelPending{Key: key})
}

type debounceHandler[T any] struct {
	sched    timer.Scheduler
	delay    time.Duration
	emit     func(context.Context, Emission[T])
	cells    *sync.Map
	disposed atomic.Bool
}

func (h *debounceHandler[T]) handle(ctx context.Context, payload Payload) {
	switch msg := payload.(type) {
	case Input[T]:
		h.debouncerFor(ctx, msg.Key).OnInput(msg.Value)

	case CancelPending:
		if raw, ok := h.cells.Load(msg.Key); ok {
			raw.(*Debouncer[T]).Cancel()
		}

	default:
		// Payload is a sealed interface, so this should never happen.
		// A mistyped Input (wrong T for this handler) is a bug in the caller.
		panic(fmt.Sprintf("unrecognized debounce payload: %T", msg))
	}
}

func (h *debounceHandler[T]) debouncerFor(ctx context.Context, key string) *Debouncer[T] {
	if raw, ok := h.cells.Load(key); ok {
		return raw.(*Debouncer[T])
	}

	d := New(h.sched, h.delay, func(v T) {
		if h.disposed.Load() {
			log.Effect(ctx, log.LogDebug, "dropped stale emission", map[string]interface{}{
				"key": key,
			})
			return
		}
		h.emit(ctx, Emission[T]{
			Key:   key,
			Value: v,
			At:    effects.TimeSpanAround(h.sched.Now()),
		})
	})
	raw, loaded := h.cells.LoadOrStore(key, d)
	if loaded {
		// Lost the race against another worker; the fresh debouncer was
		// never scheduled, so dropping it leaks nothing.
		return raw.(*Debouncer[T])
	}
	return d
}

// disposeAll runs as scope teardown, before the workers stop. Once the
// disposed flag is up no debouncer emits, even if a timer fires between
// here and its Dispose call.
func (h *debounceHandler[T]) disposeAll() {
	h.disposed.Store(true)
	h.cells.Range(func(_, raw any) bool {
		raw.(*Debouncer[T]).Dispose()
		return true
	})
}
