// Package ui implements the terminal browser for the driving log catalog.
//
// # Architecture
//
// The UI is a single Bubble Tea model over four collaborators:
//
//   - state.Store: the merged catalog list, per-log records, selection set
//   - preview.Manager: the single preview session and its sequence counter
//   - viewport.Gate: zoom gating and focus computation
//   - api.LogFetcher: the HTTP client issuing page, detail, and preview fetches
//
// All fetches run as Bubble Tea commands; their completions arrive as
// messages tagged with the identifier (pages, details) or session sequence
// (previews) they were issued under, and are merged through the store or
// manager so that stale completions cannot clobber newer state.
//
// # Interaction
//
// Space toggles a log's trajectory on the map; activation issues a detail
// fetch only when the record has no cached detail and none is in flight, and
// a loaded detail focuses the viewport on the trajectory's bounding box.
// Enter opens the preview image for the log under the cursor, Esc closes it.
// m loads the next catalog page, r reloads from the start. Each active log
// keeps a stable trajectory color for the lifetime of its activation.
//
// # Theming
//
// Themes are Lipgloss style sets keyed by name; T cycles them and persists
// the choice through the prefs package.
package ui
