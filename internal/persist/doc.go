// Package persist implements a write-through state container.
//
// A Container holds one snapshot of some state type in memory. Every change
// is a pure Transition from the old snapshot to the new one; after the
// transition is accepted the new snapshot is encoded as JSON and written to a
// domain.KVStore under the container's key, then subscribers are notified.
//
// On construction the container hydrates from the store. Missing, unreadable
// or malformed data is not an error: the container silently starts from its
// default snapshot and logs why.
package persist
