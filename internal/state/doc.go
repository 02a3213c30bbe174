// Package state provides the client-side state store for zodmap.
//
// # Overview
//
// The Store is the single source of truth the UI renders from. It merges
// paginated catalog loads into one duplicate-free list, tracks a per-log
// aggregate record (summary, optional detail, loading flag, optional
// error), and owns the selection set of logs currently active for display.
//
// # Merged List
//
// Maps do not preserve insertion order, so the merged list is two
// synchronized structures: an ordered identifier slice and an
// identifier-to-record table, always updated together. Relative order is
// first-seen order across pages. An offset-zero page applies as a full
// reset; later pages append only unseen identifiers and refresh summaries
// in place for identifiers the server re-emits.
//
// # Detail Orchestration
//
// Activating a log decides atomically whether a detail fetch is needed:
// only when the record has neither a detail nor an in-flight fetch. This
// deduplicates concurrent activations: `loading=true` implies no second
// fetch is ever issued. Deactivation neither cancels the fetch nor clears a
// fetched detail; stale detail is intentionally retained so re-activation
// is instant.
//
// # Error Scoping
//
// Every failure is scoped to the smallest affected unit. A page-load error
// leaves all previously merged pages untouched; a detail error lives only
// in that log's record and never blocks other records.
//
// # Concurrency Model
//
// Mutations are driven from the UI program loop, one at a time; fetch
// completions arrive as loop messages, so each Apply/Failed call is a
// discrete atomic transition. The internal mutex makes the store safe for
// use from helper goroutines as well, but no logic relies on it for
// correctness.
package state
