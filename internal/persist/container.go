package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"statekeep/internal/domain"
)

// ErrInvalidState is returned by Rehydrate when stored data decodes but is
// rejected by the container's Validate hook.
var ErrInvalidState = errors.New("stored state rejected")

// Transition is a pure function from the current snapshot to the next one.
type Transition[S any] func(S) S

// Options configures a Container.
type Options[S any] struct {
	Store  domain.KVStore
	Logger *zap.Logger

	// Key is the namespace the snapshot is stored under.
	Key string
	// Default is the snapshot used when storage holds nothing usable.
	Default S

	// Validate, if set, rejects decoded snapshots that break an invariant.
	Validate func(S) bool
	// Clone, if set, deep-copies a snapshot. Required when S holds pointers,
	// maps or slices so that callers cannot mutate the container's state.
	Clone func(S) S
}

// Container is an explicitly owned, persisted state holder.
type Container[S any] struct {
	key      string
	def      S
	store    domain.KVStore
	log      *zap.Logger
	validate func(S) bool
	clone    func(S) S

	mu       sync.Mutex
	state    S
	hydrated bool

	subMu  sync.Mutex
	subs   []subscriber[S]
	nextID uint64
}

type subscriber[S any] struct {
	id uint64
	fn func(next, prev S)
}

// New builds a container and hydrates it from opts.Store.
func New[S any](opts Options[S]) *Container[S] {
	c := &Container[S]{
		key:      opts.Key,
		def:      opts.Default,
		store:    opts.Store,
		log:      opts.Logger,
		validate: opts.Validate,
		clone:    opts.Clone,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.clone == nil {
		c.clone = func(s S) S { return s }
	}
	c.log = c.log.With(zap.String("key", c.key))

	state, _ := c.load()
	c.state = state
	c.hydrated = true
	return c
}

// Key returns the storage key of the container.
func (c *Container[S]) Key() string { return c.key }

// State returns the current snapshot.
func (c *Container[S]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clone(c.state)
}

// HasHydrated reports whether the initial load from storage has completed.
func (c *Container[S]) HasHydrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hydrated
}

// Set applies t, makes the result visible, writes it through to storage and
// notifies subscribers. A failed write is logged; the in-memory state keeps
// the new snapshot.
func (c *Container[S]) Set(t Transition[S]) {
	c.mu.Lock()
	prev := c.state
	next := t(c.clone(prev))
	c.state = next
	c.persist(next)
	c.mu.Unlock()

	c.notify(next, prev)
}

// Replace sets the whole snapshot.
func (c *Container[S]) Replace(s S) {
	c.Set(func(S) S { return s })
}

// Subscribe registers fn to receive every accepted transition. The returned
// function removes the subscription.
func (c *Container[S]) Subscribe(fn func(next, prev S)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber[S]{id: id, fn: fn})
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			for i, sub := range c.subs {
				if sub.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Rehydrate reloads the snapshot from storage, replacing the in-memory state
// and notifying subscribers. Nothing is written back. When storage holds
// nothing usable the default snapshot is restored and the cause, if any, is
// returned.
func (c *Container[S]) Rehydrate() error {
	next, err := c.load()

	c.mu.Lock()
	prev := c.state
	c.state = next
	c.hydrated = true
	c.mu.Unlock()

	c.notify(c.clone(next), prev)
	return err
}

// ClearStorage removes the stored snapshot. The in-memory state is kept.
func (c *Container[S]) ClearStorage() error {
	if err := c.store.Delete(c.key); err != nil {
		return fmt.Errorf("clear %s: %w", c.key, err)
	}
	return nil
}

// load reads and decodes the stored snapshot, falling back to the default.
func (c *Container[S]) load() (S, error) {
	def := c.clone(c.def)

	b, err := c.store.Read(c.key)
	if err != nil {
		c.log.Warn("read stored state, using default", zap.Error(err))
		return def, err
	}
	if b == nil {
		c.log.Debug("no stored state, using default")
		return def, nil
	}

	// Decoding over the default keeps default values for absent fields.
	s := c.clone(c.def)
	if err := json.Unmarshal(b, &s); err != nil {
		c.log.Warn("malformed stored state, using default", zap.Error(err))
		return def, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if c.validate != nil && !c.validate(s) {
		c.log.Warn("stored state rejected, using default")
		return def, fmt.Errorf("%w: %s", ErrInvalidState, c.key)
	}
	c.log.Debug("restored stored state")
	return s, nil
}

// persist writes s through to storage. Caller holds c.mu.
func (c *Container[S]) persist(s S) {
	b, err := json.Marshal(s)
	if err != nil {
		c.log.Error("encode state", zap.Error(err))
		return
	}
	if err := c.store.Write(c.key, b); err != nil {
		c.log.Error("persist state", zap.Error(err))
	}
}

func (c *Container[S]) notify(next, prev S) {
	c.subMu.Lock()
	subs := c.subs
	c.subMu.Unlock()

	// Listeners run in registration order, outside both locks.
	for _, sub := range subs {
		sub.fn(c.clone(next), c.clone(prev))
	}
}
