// Package effects provides the scoped effect-handler plumbing that
// hook_ive_go's memoization and debounce surfaces are built on.
//
// # What is an Effect?
//
// An effect is any logic that:
//   - depends on runtime context,
//   - causes external interaction (timers, logs, caches),
//   - or violates pure function guarantees.
//
// hook_ive_go models the two hook-shaped utilities it ships, dependency
// memoization and trailing-edge debouncing, as effects: a pure call site
// asks the handler registered in its context to remember a computation or
// to collapse a burst of inputs, and the handler owns the mutable cell or
// timer that makes that work.
//
// # How does it work?
//
// Handlers are registered via `WithXxxEffectHandler(ctx)` and perform
// effects through `PerformResumableEffect`, `FireAndForgetEffect`.
// Registration returns a teardown function; calling it disposes the
// handler's resources (pending timers included) and hands back the parent
// context. Delegation is type-safe, scope-bound, and never implicit.
//
// This package exports:
//   - Handler registration for resumable and fire-and-forget effects,
//     with optional per-key partitioning
//   - The perform functions used by the effect surfaces
//     (effects/memo, effects/debounce, effects/log, ...)
//
// # Design Philosophy
//
//   - Separation of concerns via handler isolation
//   - Explicit scoping and handler lifecycle via context
//   - Teardown is idempotent and always cancels outstanding work
//
// Example:
//
//	func handler(ctx context.Context) {
//	    ctx, end := debounce.WithEffectHandler(ctx, config, delay, emit)
//	    defer end()
//
//	    debounce.Effect(ctx, "search-box", "quer")
//	}
package effects
