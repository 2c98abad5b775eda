// Package commands defines the statekeep CLI and wires dependencies for subcommands.
//
// Commands
//
//   - counter show|inc|dec|reset|set   Read or change the persisted counter
//   - user show|login|logout|update    Read or change the stored login
//   - watch                            Print state whenever another process changes it
//   - clear                            Remove all stored state
//
// # Implementation
//
// The root command opens the app (config file, logger, storage backend and
// both state containers) before any subcommand runs, so handlers share one
// explicitly owned container per piece of state. The wire is closed after the
// subcommand returns, including when it fails.
package commands
