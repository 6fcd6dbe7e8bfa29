package debounce

import (
	"github.com/on-the-ground/hook_ive_go/effects"
)

// Payload is a sealed interface for debounce operations.
// Only predefined payload types (Input, CancelPending) can implement this interface.
type Payload interface {
	PartitionKey() string
	payload()
}

var _ Payload = Input[any]{}

// Input carries one value for the logical debouncer identified by Key.
type Input[T any] struct {
	Key   string
	Value T
}

func NewInput[T any](key string, value T) Payload {
	return Input[T]{Key: key, Value: value}
}

// PartitionKey routes all inputs of one logical debouncer to one worker.
func (p Input[T]) PartitionKey() string { return p.Key }

// payload prevents external packages from implementing Payload.
func (p Input[T]) payload() {}

var _ Payload = CancelPending{}

// CancelPending drops the pending value of the debouncer identified by
// Key, if any, without emitting.
type CancelPending struct {
	Key string
}

func NewCancelPending(key string) Payload {
	return CancelPending{Key: key}
}

func (p CancelPending) PartitionKey() string { return p.Key }
func (p CancelPending) payload()             {}

var _ effects.TimeBounded = Emission[any]{}

// Emission is what the handler hands to the emit sink: the key of the
// logical debouncer, the last value of the burst, and the span bounding
// the fire instant.
type Emission[T any] struct {
	Key   string
	Value T
	At    effects.TimeSpan
}

func (e Emission[T]) TimeSpan() effects.TimeSpan { return e.At }
