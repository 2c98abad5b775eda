package counter

import (
	"go.uber.org/zap"

	"statekeep/internal/domain"
	"statekeep/internal/persist"
)

// Service is the counter state container.
type Service struct {
	c *persist.Container[domain.CounterState]
}

// New returns a counter hydrated from kv.
func New(kv domain.KVStore, log *zap.Logger) *Service {
	return &Service{c: persist.New(persist.Options[domain.CounterState]{
		Key:     domain.CounterStorageKey,
		Default: domain.CounterState{Count: 0},
		Store:   kv,
		Logger:  log,
	})}
}

// State returns the current snapshot.
func (s *Service) State() domain.CounterState { return s.c.State() }

// Increment adds one.
func (s *Service) Increment() { s.c.Set(add(1)) }

// Decrement subtracts one.
func (s *Service) Decrement() { s.c.Set(add(-1)) }

// Reset sets the count to zero.
func (s *Service) Reset() { s.c.Set(set(0)) }

// SetCount sets the count to n. Any integer is accepted.
func (s *Service) SetCount(n int) { s.c.Set(set(n)) }

// Subscribe registers fn for every change of the counter.
func (s *Service) Subscribe(fn func(next, prev domain.CounterState)) (unsubscribe func()) {
	return s.c.Subscribe(fn)
}

// Container exposes the underlying container for storage maintenance.
func (s *Service) Container() *persist.Container[domain.CounterState] { return s.c }

func add(delta int) persist.Transition[domain.CounterState] {
	return func(st domain.CounterState) domain.CounterState {
		st.Count += delta
		return st
	}
}

func set(n int) persist.Transition[domain.CounterState] {
	return func(domain.CounterState) domain.CounterState {
		return domain.CounterState{Count: n}
	}
}

// Compile-time assertion that Service implements domain.CounterService.
var _ domain.CounterService = (*Service)(nil)
