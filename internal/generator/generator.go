package generator

import (
	"context"
	"errors"
	"time"

	"fitflow/internal/domain"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	// ErrGenerationFailed covers every malformed or empty generator
	// response. The caller surfaces it as a retryable failure; no partial
	// plan is ever saved.
	ErrGenerationFailed = errors.New("workout plan generation failed")
)

// PlanGenerator produces a structured workout plan from a user profile.
type PlanGenerator interface {
	Generate(ctx context.Context, profile domain.UserProfile) (*domain.WorkoutPlan, error)
}

// generatedPlan is the wire shape the model is asked to produce.
type generatedPlan struct {
	PlanName string         `json:"planName"`
	Days     []generatedDay `json:"days"`
}

type generatedDay struct {
	Name      string              `json:"name"`
	Exercises []generatedExercise `json:"exercises"`
}

type generatedExercise struct {
	ExerciseName string   `json:"exerciseName"`
	MuscleGroup  string   `json:"muscleGroup"`
	Sets         int      `json:"sets"`
	Reps         string   `json:"reps"`
	RestSeconds  int      `json:"restSeconds"`
	Notes        string   `json:"notes"`
	Instructions []string `json:"instructions"`
}

// validate rejects responses that cannot become a usable plan: no name,
// no days, or a day without exercises.
func (p *generatedPlan) validate() error {
	if p.PlanName == "" || len(p.Days) == 0 {
		return ErrGenerationFailed
	}
	for _, day := range p.Days {
		if day.Name == "" || len(day.Exercises) == 0 {
			return ErrGenerationFailed
		}
		for _, ex := range day.Exercises {
			if ex.ExerciseName == "" || ex.Sets <= 0 {
				return ErrGenerationFailed
			}
		}
	}
	return nil
}

// toDomain converts the wire shape into a WorkoutPlan with fresh ids.
// Weight starts at zero; the user records loads as they train. Generated
// plans come in active, so the store deactivates any previous plan.
func (p *generatedPlan) toDomain() *domain.WorkoutPlan {
	plan := &domain.WorkoutPlan{
		ID:        uuid.NewString(),
		Name:      p.PlanName,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
		Days:      make([]domain.WorkoutDay, 0, len(p.Days)),
	}
	for _, day := range p.Days {
		d := domain.WorkoutDay{
			ID:        uuid.NewString(),
			Name:      day.Name,
			Exercises: make([]domain.WorkoutExercise, 0, len(day.Exercises)),
		}
		for _, ex := range day.Exercises {
			instructions := ex.Instructions
			if instructions == nil {
				instructions = []string{}
			}
			d.Exercises = append(d.Exercises, domain.WorkoutExercise{
				ExerciseID:   uuid.NewString(),
				ExerciseName: ex.ExerciseName,
				MuscleGroup:  ex.MuscleGroup,
				Sets:         ex.Sets,
				Details: domain.SetDetails{
					Reps:        ex.Reps,
					Weight:      0,
					RestSeconds: ex.RestSeconds,
				},
				Notes:        ex.Notes,
				Instructions: instructions,
			})
		}
		plan.Days = append(plan.Days, d)
	}
	return plan
}
