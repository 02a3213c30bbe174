// Package config handles loading and parsing zodmap client configuration files.
//
// # Overview
//
// This package reads the zodmap TOML configuration to discover the catalog
// server's address and the map presentation settings. Only the fields the
// terminal browser needs are extracted.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/zodmap/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/zero, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/zodmap/config.toml
//   - Server: 127.0.0.1:8787
//   - Zoom threshold: 13
//   - Fit padding: 48 px
//   - Page size: 50
//
// # TOML Format
//
// Example zodmap config.toml:
//
//	base_url = "127.0.0.1:8787"
//	zoom_threshold = 13.0
//	fit_padding_px = 48
//	page_size = 50
//
// All fields are optional. Tilde expansion is performed on the config path.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows zodmap to work out-of-the-box without configuration.
package config
