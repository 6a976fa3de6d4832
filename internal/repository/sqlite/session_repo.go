package sqlite

import (
	"context"

	"fitflow/internal/repository"
)

const sessionKey = "fitflow:session"

// sqliteSessionRepository persists the active-session pointer. The value
// is the bare email string, not JSON; there is nothing to structure.
type sqliteSessionRepository struct {
	db *DB
}

// NewSessionRepository creates a SessionRepository backed by db.
func NewSessionRepository(db *DB) repository.SessionRepository {
	return &sqliteSessionRepository{db: db}
}

func (r *sqliteSessionRepository) Get(ctx context.Context) (string, error) {
	email, err := r.db.get(ctx, sessionKey)
	if err != nil {
		if isNoRows(err) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	if email == "" {
		return "", repository.ErrNotFound
	}
	return email, nil
}

func (r *sqliteSessionRepository) Set(ctx context.Context, email string) error {
	return r.db.put(ctx, sessionKey, email)
}

func (r *sqliteSessionRepository) Clear(ctx context.Context) error {
	return r.db.delete(ctx, sessionKey)
}
