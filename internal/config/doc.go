// Package config loads thwip's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/thwip/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # Configuration Fields
//
//   - api_base: root URL of the catalogue API (default http://127.0.0.1:8000).
//     A path prefix is kept, so "https://host/comics" resolves endpoints
//     below /comics.
//   - start_path: in-app path opened at launch (default /series)
//   - request_timeout: Go duration bounding each API request; unset means
//     no timeout, and a stuck request leaves its view loading
//   - listen_addr: address of the HTML server (default 127.0.0.1:7490)
//   - log_file: where the terminal browser writes its log
//     (default ~/.local/state/thwip/thwip.log)
//   - log_level: debug, info, warn or error (default info)
//
// # Path Expansion
//
// Paths beginning with ~ are expanded to the user's home directory and then
// made absolute.
//
// # Error Handling
//
// A missing file is not an error. Unreadable files, invalid TOML, malformed
// durations and unknown log levels are returned as wrapped errors.
package config
