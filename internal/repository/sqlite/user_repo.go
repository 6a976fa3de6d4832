package sqlite

import (
	"context"
	"encoding/json"

	"fitflow/internal/domain"
	"fitflow/internal/repository"
)

const usersKey = "fitflow:users"

// sqliteUserRepository implements repository.UserRepository over the kv
// table. The whole registered-user list is one JSON value, matching the
// original storage layout.
type sqliteUserRepository struct {
	db *DB
}

// NewUserRepository creates a UserRepository backed by db.
func NewUserRepository(db *DB) repository.UserRepository {
	return &sqliteUserRepository{db: db}
}

func (r *sqliteUserRepository) Load(ctx context.Context) ([]domain.UserAccount, error) {
	raw, err := r.db.get(ctx, usersKey)
	if err != nil {
		if isNoRows(err) {
			return []domain.UserAccount{}, nil
		}
		return nil, err
	}

	var users []domain.UserAccount
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, repository.ErrMalformedData
	}
	if users == nil {
		users = []domain.UserAccount{}
	}
	return users, nil
}

func (r *sqliteUserRepository) Save(ctx context.Context, users []domain.UserAccount) error {
	if users == nil {
		users = []domain.UserAccount{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.db.put(ctx, usersKey, string(raw))
}
