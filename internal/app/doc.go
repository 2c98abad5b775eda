// Package app wires application dependencies for the CLI.
//
// It resolves Config (flags merged over the optional config.yaml), builds the
// concrete key-value store and the two state containers, and exposes them via
// the Wire struct for commands to use.
package app
