package repository

import (
	"context"

	"fitflow/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound      = RepositoryError("not found")
	ErrMalformedData = RepositoryError("malformed persisted data")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository stores the device-wide registered-user list.
type UserRepository interface {
	// Load returns all registered accounts. A store with no users yet
	// returns an empty slice, not ErrNotFound.
	Load(ctx context.Context) ([]domain.UserAccount, error)
	// Save replaces the registered-user list wholesale.
	Save(ctx context.Context, users []domain.UserAccount) error
}

// SessionRepository stores the active-session pointer: the email of the
// currently authenticated user, if any.
type SessionRepository interface {
	// Get returns the persisted email, or ErrNotFound when nobody is
	// logged in.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, email string) error
	Clear(ctx context.Context) error
}

// UserDataRepository stores the per-user data blob (profile, plans,
// sessions), keyed by email.
type UserDataRepository interface {
	// Load returns the blob for email. ErrNotFound when no blob exists,
	// ErrMalformedData when one exists but cannot be decoded.
	Load(ctx context.Context, email string) (*domain.UserData, error)
	// Save replaces the blob for email wholesale.
	Save(ctx context.Context, email string, data *domain.UserData) error
}
