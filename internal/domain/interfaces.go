package domain

// KVStore is durable local key-value storage. Read returns (nil, nil) for a
// key that has never been written.
type KVStore interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Delete(key string) error
}

// CounterService exposes the counter container to presentation code.
type CounterService interface {
	State() CounterState
	Increment()
	Decrement()
	Reset()
	SetCount(n int)
	Subscribe(fn func(next, prev CounterState)) (unsubscribe func())
}

// UserService exposes the user container to presentation code.
type UserService interface {
	State() UserState
	Login(r UserRecord)
	Logout()
	UpdateProfile(p UserPatch)
	Subscribe(fn func(next, prev UserState)) (unsubscribe func())
}
