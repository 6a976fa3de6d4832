package domain

import "time"

// SetDetails holds the prescription for one exercise within a plan.
type SetDetails struct {
	Reps        string  `json:"reps"` // range, e.g. "8-12"
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
}

// WorkoutExercise is one exercise slot inside a WorkoutDay. It is reference
// data once the plan is saved; edits happen in the builder before saving.
type WorkoutExercise struct {
	ExerciseID   string     `json:"exerciseId"`
	ExerciseName string     `json:"exerciseName"`
	MuscleGroup  string     `json:"muscleGroup,omitempty"`
	Sets         int        `json:"sets"`
	Details      SetDetails `json:"details"`
	Notes        string     `json:"notes,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
}

// WorkoutDay is one training session template within a plan. Exercise order
// is execution order.
type WorkoutDay struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"` // e.g. "Day A - Chest and Triceps"
	Exercises []WorkoutExercise `json:"exercises"`
}

// WorkoutPlan is a named, ordered set of workout days. At most one plan per
// user has IsActive set; the store enforces that on add/activate.
type WorkoutPlan struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
	IsActive  bool         `json:"isActive"`
	Days      []WorkoutDay `json:"days"`
}

// Day returns the day with the given id, or nil if the plan has no such day.
func (p *WorkoutPlan) Day(id string) *WorkoutDay {
	for i := range p.Days {
		if p.Days[i].ID == id {
			return &p.Days[i]
		}
	}
	return nil
}
