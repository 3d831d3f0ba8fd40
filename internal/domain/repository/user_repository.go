package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/account-service/internal/domain/entity"
)

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmail is returned by Create when the email address is taken.
	// Stores must enforce this themselves; callers may not rely on a prior lookup.
	ErrDuplicateEmail = errors.New("repository: email address already registered")
	// ErrConfirmationConflict is returned by Save when the stored record is
	// already confirmed by a different confirmation.
	ErrConfirmationConflict = errors.New("repository: account confirmation conflict")
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create assigns ID and timestamps on u.
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByConfirmation(ctx context.Context, token, code string) (*entity.User, error)
	// Save persists u. A stored confirmed record can only be saved with the
	// same confirmation timestamp.
	Save(ctx context.Context, u *entity.User) error
	Ping(ctx context.Context) error
}
