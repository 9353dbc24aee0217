package memory

import (
	"context"
	"sync"
)

// UserRepository tracks registered users and their reminder opt-in flag.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]bool
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]bool)}
}

func (r *UserRepository) Register(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; ok {
		return nil
	}
	r.users[userID] = true
	r.order = append(r.order, userID)
	return nil
}

func (r *UserRepository) SetReminderEnabled(_ context.Context, userID string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		r.order = append(r.order, userID)
	}
	r.users[userID] = enabled
	return nil
}

func (r *UserRepository) ReminderEnabled(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.users[userID], nil
}

func (r *UserRepository) ListRegisteredIDs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out, nil
}
