package sqlite

import (
	"context"
	"encoding/json"

	"fitflow/internal/domain"
	"fitflow/internal/repository"
)

const userDataKeyPrefix = "fitflow:data:"

// sqliteUserDataRepository persists the per-user blob (profile, plans,
// sessions) keyed by email. Decoding is strict: a present-but-unparseable
// value is ErrMalformedData, never a half-populated struct. After a
// successful decode, nil nested collections are coerced to empty slices in
// one place so readers never see nil where the original data had an array.
type sqliteUserDataRepository struct {
	db *DB
}

// NewUserDataRepository creates a UserDataRepository backed by db.
func NewUserDataRepository(db *DB) repository.UserDataRepository {
	return &sqliteUserDataRepository{db: db}
}

func (r *sqliteUserDataRepository) Load(ctx context.Context, email string) (*domain.UserData, error) {
	raw, err := r.db.get(ctx, userDataKeyPrefix+email)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var data domain.UserData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, repository.ErrMalformedData
	}
	Sanitize(&data)
	return &data, nil
}

func (r *sqliteUserDataRepository) Save(ctx context.Context, email string, data *domain.UserData) error {
	clone := *data
	Sanitize(&clone)
	raw, err := json.Marshal(&clone)
	if err != nil {
		return err
	}
	return r.db.put(ctx, userDataKeyPrefix+email, string(raw))
}

// Sanitize normalizes a decoded blob in place: every nested slice that
// JSON decoding left nil becomes an empty slice. Centralizing this keeps
// the defaulting rules testable instead of scattering nil checks through
// the read paths.
func Sanitize(data *domain.UserData) {
	if data.Plans == nil {
		data.Plans = []domain.WorkoutPlan{}
	}
	if data.Sessions == nil {
		data.Sessions = []domain.WorkoutSession{}
	}
	if data.Profile != nil && data.Profile.Equipment == nil {
		data.Profile.Equipment = []string{}
	}
	for i := range data.Plans {
		plan := &data.Plans[i]
		if plan.Days == nil {
			plan.Days = []domain.WorkoutDay{}
		}
		for j := range plan.Days {
			day := &plan.Days[j]
			if day.Exercises == nil {
				day.Exercises = []domain.WorkoutExercise{}
			}
			for k := range day.Exercises {
				if day.Exercises[k].Instructions == nil {
					day.Exercises[k].Instructions = []string{}
				}
			}
		}
	}
}
