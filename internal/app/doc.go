// Package app provides the orchestration layer for the zodmap browser.
//
// # Overview
//
// This package wires together configuration, the HTTP client, client state,
// and the UI to create the complete zodmap TUI experience. It serves as the
// composition root where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load client configuration from ~/.config/zodmap/config.toml
//  2. Load user preferences from ~/.config/zodmap/prefs.toml
//  3. Initialize the HTTP client for the catalog service
//  4. Create the shared state.Store
//  5. Start the TUI and block until the user exits or the context cancels
//
// Unlike a polling monitor, zodmap fetches on demand: the UI issues page,
// detail, and preview requests as the user navigates, and merges the
// completions into the store.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - API client initialization failure
//
// Recoverable errors surface inside the UI:
//   - Page load failures (previously merged pages stay intact)
//   - Per-log detail fetch failures (scoped to the one record)
//   - Preview fetch failures (scoped to the one session)
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to config.toml (default: ~/.config/zodmap/config.toml)
//   - PrefsPath: Path to prefs.toml (default: ~/.config/zodmap/prefs.toml)
//   - BaseURL: Overrides the configured server address
package app
