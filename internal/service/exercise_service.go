package service

import (
	"errors"

	"fitflow/internal/domain"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
)

// ExerciseService serves the built-in exercise catalog. The catalog is
// static reference data: plans copy the fields they need at build time, so
// nothing here is ever mutated.
type ExerciseService interface {
	List() []domain.Exercise
	Get(id string) (*domain.Exercise, error)
}

type exerciseService struct {
	catalog []domain.Exercise
}

// NewExerciseService creates an ExerciseService over the built-in catalog.
func NewExerciseService() ExerciseService {
	return &exerciseService{catalog: builtinCatalog}
}

func (s *exerciseService) List() []domain.Exercise {
	return append([]domain.Exercise{}, s.catalog...)
}

func (s *exerciseService) Get(id string) (*domain.Exercise, error) {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			ex := s.catalog[i]
			return &ex, nil
		}
	}
	return nil, ErrExerciseNotFound
}

var builtinCatalog = []domain.Exercise{
	{
		ID:          "bench-press",
		Name:        "Barbell Bench Press",
		MuscleGroup: "Chest",
		Equipment:   "Barbell",
		Instructions: []string{
			"Lie flat with feet planted and shoulder blades retracted.",
			"Lower the bar to mid-chest under control.",
			"Press up until the elbows lock out.",
		},
		CommonMistakes: []string{"Bouncing the bar off the chest", "Flaring elbows past 90 degrees"},
		Difficulty:     domain.LevelBeginner,
	},
	{
		ID:          "squat",
		Name:        "Barbell Back Squat",
		MuscleGroup: "Legs",
		Equipment:   "Barbell",
		Instructions: []string{
			"Set the bar on the upper traps and brace the core.",
			"Sit down until the hips pass knee depth.",
			"Drive up through the mid-foot.",
		},
		CommonMistakes: []string{"Knees caving inward", "Heels lifting off the floor"},
		Difficulty:     domain.LevelIntermediate,
	},
	{
		ID:          "deadlift",
		Name:        "Conventional Deadlift",
		MuscleGroup: "Back",
		Equipment:   "Barbell",
		Instructions: []string{
			"Grip the bar just outside the knees with a flat back.",
			"Push the floor away, keeping the bar against the legs.",
			"Lock out hips and knees together.",
		},
		CommonMistakes: []string{"Rounding the lower back", "Jerking the bar off the floor"},
		Difficulty:     domain.LevelAdvanced,
	},
	{
		ID:          "pull-up",
		Name:        "Pull-Up",
		MuscleGroup: "Back",
		Equipment:   "Bodyweight",
		Instructions: []string{
			"Hang from the bar with an overhand grip.",
			"Pull the chin over the bar leading with the chest.",
			"Lower to a full hang each rep.",
		},
		CommonMistakes: []string{"Kipping for momentum", "Cutting range of motion short"},
		Difficulty:     domain.LevelIntermediate,
	},
	{
		ID:          "overhead-press",
		Name:        "Overhead Press",
		MuscleGroup: "Shoulders",
		Equipment:   "Barbell",
		Instructions: []string{
			"Start with the bar at the clavicle, wrists stacked.",
			"Press overhead while keeping the ribs down.",
			"Finish with the bar over the mid-foot.",
		},
		CommonMistakes: []string{"Leaning back excessively", "Pressing around the chin"},
		Difficulty:     domain.LevelIntermediate,
	},
	{
		ID:          "plank",
		Name:        "Plank",
		MuscleGroup: "Core",
		Equipment:   "Bodyweight",
		Instructions: []string{
			"Stack elbows under shoulders.",
			"Squeeze glutes and keep a straight line head to heel.",
			"Breathe without letting the hips sag.",
		},
		CommonMistakes: []string{"Hips sagging or piking", "Holding the breath"},
		Difficulty:     domain.LevelBeginner,
	},
}
