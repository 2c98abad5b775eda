package user

import (
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"statekeep/internal/domain"
	"statekeep/internal/persist"
)

// avatarBaseURL renders a deterministic avatar from a seed.
const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg"

// Service is the user state container.
type Service struct {
	c *persist.Container[domain.UserState]
}

// New returns a user container hydrated from kv. Stored data whose login flag
// disagrees with the presence of a user is discarded.
func New(kv domain.KVStore, log *zap.Logger) *Service {
	return &Service{c: persist.New(persist.Options[domain.UserState]{
		Key:      domain.UserStorageKey,
		Default:  domain.UserState{User: nil, IsLoggedIn: false},
		Store:    kv,
		Logger:   log,
		Validate: domain.UserState.Valid,
		Clone:    domain.UserState.Clone,
	})}
}

// State returns the current snapshot.
func (s *Service) State() domain.UserState { return s.c.State() }

// Login stores r and marks the user logged in.
func (s *Service) Login(r domain.UserRecord) {
	s.c.Set(func(domain.UserState) domain.UserState {
		return domain.UserState{User: &r, IsLoggedIn: true}
	})
}

// Logout clears the user and the login flag together.
func (s *Service) Logout() {
	s.c.Set(func(domain.UserState) domain.UserState {
		return domain.UserState{User: nil, IsLoggedIn: false}
	})
}

// UpdateProfile merges the provided fields into the current record. It is a
// no-op, with no write and no notification, when nobody is logged in.
func (s *Service) UpdateProfile(p domain.UserPatch) {
	if s.c.State().User == nil {
		return
	}
	s.c.Set(func(st domain.UserState) domain.UserState {
		if st.User == nil {
			return st
		}
		merged := p.Apply(*st.User)
		return domain.UserState{User: &merged, IsLoggedIn: st.IsLoggedIn}
	})
}

// Subscribe registers fn for every change of the user state.
func (s *Service) Subscribe(fn func(next, prev domain.UserState)) (unsubscribe func()) {
	return s.c.Subscribe(fn)
}

// Container exposes the underlying container for storage maintenance.
func (s *Service) Container() *persist.Container[domain.UserState] { return s.c }

// NewRecord builds a record for a fresh login with a generated id and an
// avatar seeded by name.
func NewRecord(name, email string) domain.UserRecord {
	return domain.UserRecord{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Avatar: AvatarURL(name),
	}
}

// AvatarURL returns the generated avatar location for seed.
func AvatarURL(seed string) string {
	return avatarBaseURL + "?seed=" + url.QueryEscape(seed)
}

// Compile-time assertion that Service implements domain.UserService.
var _ domain.UserService = (*Service)(nil)
