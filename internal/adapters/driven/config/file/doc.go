// Package file provides file-based configuration adapters.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage with dotted keys
//   - Watcher: reloads a ConfigStore when its file changes on disk
package file
