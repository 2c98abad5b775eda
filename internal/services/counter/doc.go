// Package counter manages the persisted counter.
//
// The count is unbounded and may go negative. Every operation writes the new
// snapshot through to the "counter-storage" key.
package counter
