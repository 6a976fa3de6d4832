package domain

import "time"

// WorkoutSession is the completed record of one actual execution of a
// workout day. Created exactly once when a workout finishes, immutable
// thereafter; the per-user history is append-only, newest first.
type WorkoutSession struct {
	ID                 string    `json:"id"`
	PlanID             string    `json:"planId"`
	DayID              string    `json:"dayId"`
	Date               time.Time `json:"date"`
	DurationSeconds    int       `json:"durationSeconds"`
	TotalVolume        float64   `json:"totalVolume"` // sets x reps x weight
	CompletedExercises int       `json:"completedExercises"`
	TotalExercises     int       `json:"totalExercises"`
}
