package log

import (
	"context"

	"github.com/on-the-ground/hook_ive_go/effects"
	effectmodel "github.com/on-the-ground/hook_ive_go/effects/internal/model"
	"go.uber.org/zap"
)

// Level defines the severity level for log messages.
type Level string

const (
	// LogInfo is used for general informational messages.
	LogInfo Level = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn Level = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError Level = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug Level = "debug"
)

// Payload is the payload structure for the logging effect.
// It contains the log level, message string, and optional structured fields.
type Payload struct {
	Level   Level
	Message string
	Fields  map[string]interface{}
}

func (lp Payload) PartitionKey() string {
	return "unpartitioned"
}

// WithZapEffectHandler registers a fire-and-forget log effect handler using zap.Logger.
// The returned context includes the handler under the EffectLog enum.
// The teardown function should be called when the effect handler is no longer needed.
// If the teardown function is called early, the effect handler will be closed.
// The context returned by the teardown function should be used for further operations.
func WithZapEffectHandler(
	ctx context.Context,
	bufferSize int,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	return effects.WithFireAndForgetEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectLog,
		func(ctx context.Context, payload Payload) {
			fields := make([]zap.Field, 0, len(payload.Fields))
			for k, v := range payload.Fields {
				fields = append(fields, zap.Any(k, v))
			}

			switch payload.Level {
			case LogInfo:
				logger.Info(payload.Message, fields...)
			case LogWarn:
				logger.Warn(payload.Message, fields...)
			case LogError:
				logger.Error(payload.Message, fields...)
			case LogDebug:
				logger.Debug(payload.Message, fields...)
			default:
				logger.Info(payload.Message, fields...)
			}
		},
		func() {
			if err := logger.Sync(); err != nil {
				logger.Warn("failed to sync logger", zap.Error(err))
			}
		},
	)
}

// Effect performs a fire-and-forget log effect using the EffectLog handler in the context.
// This should be used to emit structured logs within an effect-managed execution scope.
func Effect(ctx context.Context, level Level, msg string, fields map[string]interface{}) {
	effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, Payload{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
}
