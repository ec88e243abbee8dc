// Package aggregate is an in-process coordinator for compose.
//
// It plays the role of the orchestration layer around the compose core:
//
//  1. Each partition of rows (ComposeDense) or cells (ComposeSparse) is
//     assembled by its own goroutine into a private *compose.State; workers
//     share no mutable memory.
//  2. The partial states are reduced with compose.Merge, either as a parallel
//     pairwise Tree or as a sequential Chain (Options: WithStrategy).
//
// Concurrency is bounded by WithWorkers and driven by errgroup: the first
// failing worker cancels its siblings through the shared context. Logging goes
// to a *slog.Logger (WithLogger); the default discards everything.
//
// Errors are never retried here; callers decide whether to re-run a partition
// or the whole aggregation.
package aggregate
