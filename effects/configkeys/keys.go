package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigEffectPrefix = ConfigPrefix + delimiter + "effect"

	ConfigEffectMemoPrefix = ConfigEffectPrefix + delimiter + "memo"

	ConfigEffectMemoHandlerPrefix     = ConfigEffectMemoPrefix + delimiter + "handler"
	ConfigEffectMemoHandlerBufferSize = ConfigEffectMemoHandlerPrefix + delimiter + "buffer_size"
	ConfigEffectMemoHandlerNumWorkers = ConfigEffectMemoHandlerPrefix + delimiter + "num_workers"

	ConfigEffectDebouncePrefix = ConfigEffectPrefix + delimiter + "debounce"

	ConfigEffectDebounceHandlerPrefix     = ConfigEffectDebouncePrefix + delimiter + "handler"
	ConfigEffectDebounceHandlerBufferSize = ConfigEffectDebounceHandlerPrefix + delimiter + "buffer_size"
	ConfigEffectDebounceHandlerNumWorkers = ConfigEffectDebounceHandlerPrefix + delimiter + "num_workers"
	ConfigEffectDebounceDelay             = ConfigEffectDebouncePrefix + delimiter + "delay"

	ConfigEffectBindingPrefix = ConfigEffectPrefix + delimiter + "binding"

	ConfigEffectBindingHandlerPrefix     = ConfigEffectBindingPrefix + delimiter + "handler"
	ConfigEffectBindingHandlerBufferSize = ConfigEffectBindingHandlerPrefix + delimiter + "buffer_size"
	ConfigEffectBindingHandlerNumWorkers = ConfigEffectBindingHandlerPrefix + delimiter + "num_workers"

	ConfigEffectLogPrefix = ConfigEffectPrefix + delimiter + "log"

	ConfigEffectLogHandlerPrefix     = ConfigEffectLogPrefix + delimiter + "handler"
	ConfigEffectLogHandlerBufferSize = ConfigEffectLogHandlerPrefix + delimiter + "buffer_size"
	ConfigEffectLogHandlerNumWorkers = ConfigEffectLogHandlerPrefix + delimiter + "num_workers"

	ConfigEffectConcurrencyPrefix = ConfigEffectPrefix + delimiter + "concurrency"

	ConfigEffectConcurrencyHandlerPrefix     = ConfigEffectConcurrencyPrefix + delimiter + "handler"
	ConfigEffectConcurrencyHandlerBufferSize = ConfigEffectConcurrencyHandlerPrefix + delimiter + "buffer_size"
	ConfigEffectConcurrencyHandlerNumWorkers = ConfigEffectConcurrencyHandlerPrefix + delimiter + "num_workers"
)
