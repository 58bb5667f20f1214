// Package storefake provides an in-memory CredentialStore for tests.
// It is safe for concurrent use and mirrors the error contract of the
// MySQL-backed repository.
package storefake

import (
	"context"
	"sync"

	"github.com/prasantparajuli/climate-solutions/internal/model"
	"github.com/prasantparajuli/climate-solutions/internal/repository"
)

// FakeStore keeps user records keyed by user name.
type FakeStore struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID uint64
}

func NewFakeStore() *FakeStore {
	return &FakeStore{users: make(map[string]*model.User)}
}

// Create inserts a user, enforcing user_name uniqueness under the
// lock so concurrent registrations cannot both succeed.
func (f *FakeStore) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.UserName]; ok {
		return repository.ErrUserNameExists
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	cp.LoginHistory = append([]model.LoginAttempt(nil), u.LoginHistory...)
	f.users[u.UserName] = &cp
	return nil
}

// GetByUserName returns a copy of the stored record so callers cannot
// mutate the store through the result.
func (f *FakeStore) GetByUserName(_ context.Context, userName string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userName]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	cp.LoginHistory = append([]model.LoginAttempt(nil), u.LoginHistory...)
	return &cp, nil
}

// AppendLoginAttempt appends atomically under the lock, preserving
// call order for the same user.
func (f *FakeStore) AppendLoginAttempt(_ context.Context, userName string, a model.LoginAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userName]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.LoginHistory = append(u.LoginHistory, a)
	return nil
}

// Len reports how many user records exist; tests use it to assert
// that failed registrations created nothing.
func (f *FakeStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}
