package debounce_test

import (
	"testing"
	"time"

	"github.com/on-the-ground/hook_ive_go/effects/debounce"
	"github.com/on-the-ground/hook_ive_go/shared/timer"

	"github.com/stretchr/testify/assert"
)

type recorded[T any] struct {
	value T
	at    time.Time
}

func newRecorder[T any](m *timer.Manual) (func(T), *[]recorded[T]) {
	emits := &[]recorded[T]{}
	return func(v T) {
		*emits = append(*emits, recorded[T]{value: v, at: m.Now()})
	}, emits
}

func TestDebouncer_TrailingEdgeEmitsLastValue(t *testing.T) {
	m := timer.NewManual()
	start := m.Now()
	emit, emits := newRecorder[string](m)
	d := debounce.New(m, 500*time.Millisecond, emit)

	d.OnInput("v1")
	m.Advance(100 * time.Millisecond)
	d.OnInput("v2")
	m.Advance(50 * time.Millisecond)
	d.OnInput("v3")

	m.Advance(2 * time.Second)

	assert.Len(t, *emits, 1)
	assert.Equal(t, "v3", (*emits)[0].value)
	// last input at t=150ms, so the window closes at t=650ms
	assert.Equal(t, start.Add(650*time.Millisecond), (*emits)[0].at)
}

func TestDebouncer_TypingBurst(t *testing.T) {
	m := timer.NewManual()
	start := m.Now()
	emit, emits := newRecorder[string](m)
	d := debounce.New(m, 300*time.Millisecond, emit)

	d.OnInput("a")
	m.Advance(50 * time.Millisecond)
	d.OnInput("ab")
	m.Advance(200 * time.Millisecond)
	d.OnInput("abc")

	m.Advance(time.Second)

	assert.Len(t, *emits, 1)
	assert.Equal(t, "abc", (*emits)[0].value)
	assert.Equal(t, start.Add(550*time.Millisecond), (*emits)[0].at)
}

func TestDebouncer_SpacedInputsEmitTwice(t *testing.T) {
	m := timer.NewManual()
	emit, emits := newRecorder[int](m)
	d := debounce.New(m, 100*time.Millisecond, emit)

	d.OnInput(1)
	m.Advance(150 * time.Millisecond)
	d.OnInput(2)
	m.Advance(150 * time.Millisecond)

	assert.Len(t, *emits, 2)
	assert.Equal(t, 1, (*emits)[0].value)
	assert.Equal(t, 2, (*emits)[1].value)
}

func TestDebouncer_DisposePreventsEmitForever(t *testing.T) {
	m := timer.NewManual()
	emit, emits := newRecorder[string](m)
	d := debounce.New(m, 500*time.Millisecond, emit)

	d.OnInput("doomed")
	m.Advance(100 * time.Millisecond)
	d.Dispose()

	m.Advance(time.Hour)
	assert.Empty(t, *emits)

	// inputs after dispose are dropped too
	d.OnInput("late")
	m.Advance(time.Hour)
	assert.Empty(t, *emits)
	assert.False(t, d.Pending())
}

func TestDebouncer_DisposeIsIdempotent(t *testing.T) {
	m := timer.NewManual()
	emit, emits := newRecorder[string](m)
	d := debounce.New(m, 100*time.Millisecond, emit)

	d.OnInput("x")
	d.Dispose()
	d.Dispose()

	m.Advance(time.Second)
	assert.Empty(t, *emits)
}

func TestDebouncer_CancelDropsPendingValue(t *testing.T) {
	m := timer.NewManual()
	emit, emits := newRecorder[string](m)
	d := debounce.New(m, 100*time.Millisecond, emit)

	d.OnInput("x")
	d.Cancel()
	m.Advance(time.Second)
	assert.Empty(t, *emits)

	// canceling while Idle is a no-op, and the debouncer keeps working
	d.Cancel()
	d.OnInput("y")
	m.Advance(time.Second)
	assert.Len(t, *emits, 1)
	assert.Equal(t, "y", (*emits)[0].value)
}

func TestDebouncer_AtMostOneOutstandingTimer(t *testing.T) {
	m := timer.NewManual()
	emit, _ := newRecorder[int](m)
	d := debounce.New(m, 100*time.Millisecond, emit)

	for i := 0; i < 10; i++ {
		d.OnInput(i)
	}
	assert.Equal(t, 1, m.PendingCount())
}

func TestDebouncer_SetDelayAppliesFromNextInput(t *testing.T) {
	m := timer.NewManual()
	start := m.Now()
	emit, emits := newRecorder[string](m)
	d := debounce.New(m, 500*time.Millisecond, emit)

	d.OnInput("slow")
	d.SetDelay(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, d.Delay())

	// the already-scheduled deadline keeps the old delay
	m.Advance(200 * time.Millisecond)
	assert.Empty(t, *emits)
	m.Advance(300 * time.Millisecond)
	assert.Len(t, *emits, 1)
	assert.Equal(t, start.Add(500*time.Millisecond), (*emits)[0].at)

	d.OnInput("fast")
	m.Advance(100 * time.Millisecond)
	assert.Len(t, *emits, 2)
	assert.Equal(t, "fast", (*emits)[1].value)
}

func TestDebouncer_ZeroDelayEmitsOnNextAdvance(t *testing.T) {
	m := timer.NewManual()
	emit, emits := newRecorder[string](m)
	d := debounce.New(m, 0, emit)

	d.OnInput("now")
	assert.Empty(t, *emits) // still asynchronous, never re-entrant
	m.Advance(0)
	assert.Len(t, *emits, 1)
	assert.Equal(t, "now", (*emits)[0].value)
}

func TestDebouncer_DeadlineReflectsLastInput(t *testing.T) {
	m := timer.NewManual()
	emit, _ := newRecorder[string](m)
	d := debounce.New(m, 500*time.Millisecond, emit)

	_, ok := d.Deadline()
	assert.False(t, ok)

	d.OnInput("x")
	m.Advance(100 * time.Millisecond)
	d.OnInput("y")

	span, ok := d.Deadline()
	assert.True(t, ok)
	assert.True(t, span.Contains(m.Now().Add(500*time.Millisecond)))

	m.Advance(500 * time.Millisecond)
	_, ok = d.Deadline()
	assert.False(t, ok)
}

func TestDebouncer_NilSchedulerUsesSystemClock(t *testing.T) {
	emitted := make(chan string, 1)
	d := debounce.New(nil, 10*time.Millisecond, func(v string) {
		emitted <- v
	})
	defer d.Dispose()

	d.OnInput("real")
	select {
	case v := <-emitted:
		assert.Equal(t, "real", v)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for emission")
	}
}

func TestDebouncer_NilEmitPanics(t *testing.T) {
	assert.Panics(t, func() {
		debounce.New[string](timer.NewManual(), time.Second, nil)
	})
}
