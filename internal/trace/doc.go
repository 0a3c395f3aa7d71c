// Package trace provides a tracing subsystem for the generator CLI.
//
// The trace package enables tracking of generation stages, per-fixture
// processing, and other operations to help diagnose performance issues
// and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	vsforge generate --trace=- --trace-level=phase --trace-mode=stream fixture.mp
//
// The default --trace-mode is ring, which keeps events in memory only and
// writes nothing to the --trace path.
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Driver and stage boundaries
//   - LevelDetail: Per-fixture events
//   - LevelDebug: Everything including IR nodes
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopeModule: Per-fixture processing
//   - ScopePass: Generation stages (load, generate, write)
//   - ScopeNode: IR node level (future)
//
// # Context Propagation
//
// Tracers are propagated through the generation pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "generate", parentID)
//	defer span.End("")
package trace
