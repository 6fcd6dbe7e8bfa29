package effects_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/on-the-ground/hook_ive_go/effects"
	effectmodel "github.com/on-the-ground/hook_ive_go/effects/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnum effectmodel.EffectEnum = "hook_ive_go_effect_enum_test"

type echoPayload string

func (p echoPayload) PartitionKey() string { return string(p) }

func TestResumableEffect_RoundTrip(t *testing.T) {
	ctx := context.Background()

	ctx, teardown := effects.WithResumableEffectHandler(
		ctx,
		1,
		testEnum,
		func(ctx context.Context, p echoPayload) (string, error) {
			return "echo: " + string(p), nil
		},
	)
	defer teardown()

	resultCh := effects.PerformResumableEffect[echoPayload, string](ctx, testEnum, "hi")

	select {
	case res := <-resultCh:
		require.NoError(t, res.Err)
		assert.Equal(t, "echo: hi", res.Value)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for resumable result")
	}
}

func TestResumableEffect_HandlerErrorIsForwarded(t *testing.T) {
	ctx := context.Background()

	errBroken := errors.New("broken")
	ctx, teardown := effects.WithResumableEffectHandler(
		ctx,
		1,
		testEnum,
		func(ctx context.Context, p echoPayload) (string, error) {
			return "", errBroken
		},
	)
	defer teardown()

	res := <-effects.PerformResumableEffect[echoPayload, string](ctx, testEnum, "hi")
	assert.ErrorIs(t, res.Err, errBroken)
}

func TestResumableEffect_AfterTeardownTimesOut(t *testing.T) {
	ctx := context.Background()

	handlerCtx, teardown := effects.WithResumableEffectHandler(
		ctx,
		1,
		testEnum,
		func(ctx context.Context, p echoPayload) (string, error) {
			return string(p), nil
		},
	)
	teardown()
	time.Sleep(50 * time.Millisecond) // let the worker exit

	timeoutCtx, cancel := context.WithTimeout(handlerCtx, 50*time.Millisecond)
	defer cancel()

	resultCh := effects.PerformResumableEffect[echoPayload, string](timeoutCtx, testEnum, "late")
	select {
	case _, ok := <-resultCh:
		assert.False(t, ok, "expected no result after teardown")
	case <-timeoutCtx.Done():
		// the effect never resumes once the scope is closed
	}
}

func TestPartitionableResumableEffect_SameKeyStaysOrdered(t *testing.T) {
	ctx := context.Background()

	var order []string
	ctx, teardown := effects.WithResumablePartitionableEffectHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(4, 4),
		testEnum,
		func(ctx context.Context, p echoPayload) (int, error) {
			order = append(order, string(p)) // same key, same worker: no race
			return len(order), nil
		},
	)
	defer teardown()

	first := effects.PerformResumableEffect[echoPayload, int](ctx, testEnum, "same-key")
	second := effects.PerformResumableEffect[echoPayload, int](ctx, testEnum, "same-key")

	res1 := <-first
	res2 := <-second
	require.NoError(t, res1.Err)
	require.NoError(t, res2.Err)
	assert.Equal(t, 1, res1.Value)
	assert.Equal(t, 2, res2.Value)
}

func TestFireAndForgetEffect_NoHandlerPanicsWithEnum(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.True(t, strings.Contains(errFromRecover(r).Error(), "no effect handler"))
	}()
	effects.FireAndForgetEffect[echoPayload](context.Background(), testEnum, "orphan")
}

func errFromRecover(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errors.New("non-error panic")
}
