package memo

import (
	"context"
	"fmt"

	"github.com/on-the-ground/hook_ive_go/effects"
	effectmodel "github.com/on-the-ground/hook_ive_go/effects/internal/model"
	"github.com/on-the-ground/hook_ive_go/pure"
	"github.com/on-the-ground/hook_ive_go/shared/helper"
)

// WithEffectHandler registers a resumable, partitionable effect handler
// for keyed dependency memoization. Each payload key owns one Entry in the
// given store; payloads with the same key are serialized on the same
// worker, so entries need no synchronization of their own.
//
// The handler is registered in the context and can be used to perform memo
// operations. It is closed when the context is canceled or when the
// teardown function is called. If the teardown function is called early,
// the effect handler will be closed; use the context it returns for
// further operations.
func WithEffectHandler(
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	store CellStore,
) (context.Context, func() context.Context) {
	if store == nil {
		store = NewInMemoryStore()
	}
	mh := memoHandler{store: store}
	return effects.WithResumablePartitionableEffectHandler[Payload, any](
		ctx,
		config,
		effectmodel.EffectMemo,
		mh.handle,
	)
}

// Effect memoizes fn under key: when deps match the previous successful
// call for that key the cached value is returned and fn is not invoked;
// otherwise fn runs and, on success, replaces the entry. A failed fn
// leaves the entry untouched, so the next call with the same deps retries.
//
// An empty deps list computes once and hits forever (until Invalidate).
func Effect[R any](
	ctx context.Context,
	key string,
	deps []pure.DepKey,
	fn func(context.Context) (R, error),
) (R, error) {
	return helper.GetTypedValueOf[R](func() (any, error) {
		return effect(ctx, Compute[R]{Key: key, Deps: deps, Fn: fn})
	})
}

// InvalidateEffect drops the entry stored under key.
func InvalidateEffect(ctx context.Context, key string) error {
	_, err := effect(ctx, Invalidate{Key: key})
	return err
}

// effect performs a memo operation using the EffectMemo handler.
func effect(ctx context.Context, payload Payload) (val any, err error) {
	resultCh := effects.PerformResumableEffect[Payload, any](ctx, effectmodel.EffectMemo, payload)
	select {
	case res, ok := <-resultCh:
		if ok {
			val = res.Value
			err = res.Err
			return
		}
	case <-ctx.Done():
	}
	err = ctx.Err()
	return
}

// memoHandler owns the store. Per-key serialization comes from the
// partitioned dispatcher, not from locking here.
type memoHandler struct {
	store CellStore
}

func (mh memoHandler) handle(ctx context.Context, payload Payload) (any, error) {
	switch p := payload.(type) {
	case computer:
		prev, hit, err := mh.store.Get(p.PartitionKey())
		if err != nil {
			return nil, fmt.Errorf("memo store get: %w", err)
		}

		next, val, recomputed, err := p.run(ctx, prev, hit)
		if err != nil {
			// Compute failure: entry stays as it was.
			return nil, err
		}
		if recomputed {
			if err := mh.store.Set(p.PartitionKey(), next); err != nil {
				return nil, fmt.Errorf("memo store set: %w", err)
			}
		}
		return val, nil

	case Invalidate:
		if err := mh.store.Delete(p.Key); err != nil {
			return nil, fmt.Errorf("memo store delete: %w", err)
		}
		return nil, nil

	default:
		// Payload is a sealed interface, so this should never happen.
		// Bug in the code.
		panic(fmt.Sprintf("unrecognized memo payload: %T", p))
	}
}
