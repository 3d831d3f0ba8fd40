package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/account-service/internal/domain/entity"
	"github.com/oksasatya/account-service/internal/domain/repository"
)

// UserRepository is an in-memory implementation of repository.UserRepository.
// It enforces the same email uniqueness and confirmation guard as the
// Postgres store, so it is safe for concurrent registrations.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.EmailAddress]; taken {
		return repository.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := clone(u)
	r.byID[u.ID] = stored
	r.byEmail[u.EmailAddress] = u.ID
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *UserRepository) GetByConfirmation(_ context.Context, token, code string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.AccountConfirmation.Token == token && u.AccountConfirmation.Code == code {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.AccountConfirmation.Status && !sameInstant(stored.AccountConfirmation.Timestamp, u.AccountConfirmation.Timestamp) {
		return repository.ErrConfirmationConflict
	}

	u.UpdatedAt = time.Now().UTC()
	next := clone(u)
	// identity columns are immutable
	next.EmailAddress = stored.EmailAddress
	next.PhoneNumber = stored.PhoneNumber
	next.AccountConfirmation.Token = stored.AccountConfirmation.Token
	next.AccountConfirmation.Code = stored.AccountConfirmation.Code
	next.CreatedAt = stored.CreatedAt
	r.byID[u.ID] = next
	return nil
}

func (r *UserRepository) Ping(context.Context) error { return nil }

// Count returns the number of stored users.
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func clone(u *entity.User) *entity.User {
	c := *u
	c.AccountConfirmation.Timestamp = copyTime(u.AccountConfirmation.Timestamp)
	c.PasswordReset.Expiry = copyTime(u.PasswordReset.Expiry)
	c.PasswordReset.LastResetAt = copyTime(u.PasswordReset.LastResetAt)
	c.LastLoginAt = copyTime(u.LastLoginAt)
	if u.PasswordReset.Token != nil {
		tok := *u.PasswordReset.Token
		c.PasswordReset.Token = &tok
	}
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
