// Package services implements the driving port interfaces.
// Services validate input, apply the configured policy and orchestrate
// calls to driven ports (stores, config, metrics).
//
// Services never talk to SQLite directly and hold no state of their own
// beyond the pending update cell.
package services
