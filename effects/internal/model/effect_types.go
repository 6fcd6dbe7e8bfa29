package effectmodel

import "fmt"

type EffectEnum string

const (
	EffectLog         EffectEnum = "hook_ive_go_effect_enum_log"
	EffectConcurrency EffectEnum = "hook_ive_go_effect_enum_concurrency"
	EffectBinding     EffectEnum = "hook_ive_go_effect_enum_binding"
	EffectMemo        EffectEnum = "hook_ive_go_effect_enum_memo"
	EffectDebounce    EffectEnum = "hook_ive_go_effect_enum_debounce"
	EffectTask        EffectEnum = "hook_ive_go_effect_enum_task"
)

// ErrNoEffectHandler indicates that no handler for the requested effect
// is registered in the current context chain.
var ErrNoEffectHandler = fmt.Errorf("no effect handler registered for this effect")

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1 (fan-out processing for partitioned payloads)
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

type Partitionable interface {
	PartitionKey() string
}
