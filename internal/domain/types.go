package domain

// Storage keys under which each container persists its snapshot.
const (
	CounterStorageKey = "counter-storage"
	UserStorageKey    = "user-storage"
)

// CounterState is the persisted counter snapshot. Count is unbounded and may
// go negative.
type CounterState struct {
	Count int `json:"count"`
}

// UserRecord is the locally entered profile. ID is supplied by the caller.
type UserRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// UserState is the persisted login snapshot.
//
// IsLoggedIn is true exactly when User is non-nil.
type UserState struct {
	User       *UserRecord `json:"user"`
	IsLoggedIn bool        `json:"isLoggedIn"`
}

// Valid reports whether the login flag agrees with the presence of a user.
func (s UserState) Valid() bool { return s.IsLoggedIn == (s.User != nil) }

// Clone returns a copy of s that shares no memory with it.
func (s UserState) Clone() UserState {
	if s.User == nil {
		return s
	}
	u := *s.User
	return UserState{User: &u, IsLoggedIn: s.IsLoggedIn}
}

// UserPatch carries the fields of a partial profile update. Nil fields are
// left untouched.
type UserPatch struct {
	ID     *string
	Name   *string
	Email  *string
	Avatar *string
}

// Empty reports whether the patch provides no fields.
func (p UserPatch) Empty() bool {
	return p.ID == nil && p.Name == nil && p.Email == nil && p.Avatar == nil
}

// Apply shallow-merges the provided fields over r and returns the result.
func (p UserPatch) Apply(r UserRecord) UserRecord {
	if p.ID != nil {
		r.ID = *p.ID
	}
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Avatar != nil {
		r.Avatar = *p.Avatar
	}
	return r
}
