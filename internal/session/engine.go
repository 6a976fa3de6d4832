package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"fitflow/internal/domain"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrEmptyDay          = errors.New("workout day has no exercises")
	ErrInvalidTransition = errors.New("invalid workout transition")
	ErrAlreadyFinished   = errors.New("workout already finished")
)

const (
	defaultReps   = 8
	defaultWeight = 10
)

// Snapshot is a point-in-time view of a running workout, safe to hand to
// the presentation layer.
type Snapshot struct {
	PlanID               string `json:"planId"`
	DayID                string `json:"dayId"`
	DayName              string `json:"dayName"`
	CurrentExerciseIndex int    `json:"currentExerciseIndex"`
	SetsCompleted        []int  `json:"setsCompleted"`
	ElapsedSeconds       int    `json:"elapsedSeconds"`
	RestSecondsRemaining int    `json:"restSecondsRemaining"`
	IsResting            bool   `json:"isResting"`
	Finished             bool   `json:"finished"`
}

// Engine drives one workout instance from start to a finalized summary.
// It is a plain state machine: time advances only through Tick, which the
// run loop calls once per wall-clock second. That keeps every transition
// deterministic under test.
//
// Transitions: CompleteSet increments the current exercise's set count and
// enters rest while sets remain; rest counts down to zero (or is skipped)
// and never goes negative; Advance moves to the next exercise once the
// current one is complete; Finish emits the session summary from the last
// exercise. The elapsed counter runs from start to finish and never pauses.
type Engine struct {
	mu sync.Mutex

	plan domain.WorkoutPlan
	day  domain.WorkoutDay

	current       int
	setsCompleted []int
	elapsed       int
	restRemaining int
	resting       bool
	finished      bool
}

// NewEngine creates an engine over an immutable (plan, day) pair. A day
// with no exercises cannot be started.
func NewEngine(plan domain.WorkoutPlan, day domain.WorkoutDay) (*Engine, error) {
	if len(day.Exercises) == 0 {
		return nil, ErrEmptyDay
	}
	return &Engine{
		plan:          plan,
		day:           day,
		setsCompleted: make([]int, len(day.Exercises)),
	}, nil
}

// Run ticks the engine once per second until ctx is cancelled or the
// workout finishes. The caller owns ctx; cancelling it is the guaranteed
// teardown path for the timer.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.Tick() {
				return
			}
		}
	}
}

// Tick advances wall-clock state by one second: the elapsed counter always,
// the rest countdown while resting. Reaching zero rest exits the resting
// state. Returns false once the workout has finished.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return false
	}
	e.elapsed++
	if e.resting {
		e.restRemaining--
		if e.restRemaining <= 0 {
			e.restRemaining = 0
			e.resting = false
		}
	}
	return true
}

// CompleteSet records one finished set for the current exercise. Invalid
// while resting and once the current exercise already has all sets done.
// Entering rest happens only when sets remain.
func (e *Engine) CompleteSet() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return ErrAlreadyFinished
	}
	if e.resting {
		return ErrInvalidTransition
	}
	exercise := e.day.Exercises[e.current]
	if e.setsCompleted[e.current] >= exercise.Sets {
		return ErrInvalidTransition
	}

	e.setsCompleted[e.current]++
	if e.setsCompleted[e.current] < exercise.Sets {
		e.restRemaining = exercise.Details.RestSeconds
		e.resting = e.restRemaining > 0
	}
	return nil
}

// SkipRest ends the rest countdown early. A no-op when not resting.
func (e *Engine) SkipRest() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return ErrAlreadyFinished
	}
	e.resting = false
	e.restRemaining = 0
	return nil
}

// Advance moves to the next exercise. Valid only when the current exercise
// has all sets completed and is not the last one.
func (e *Engine) Advance() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return ErrAlreadyFinished
	}
	if e.setsCompleted[e.current] < e.day.Exercises[e.current].Sets {
		return ErrInvalidTransition
	}
	if e.current >= len(e.day.Exercises)-1 {
		return ErrInvalidTransition
	}
	e.current++
	e.resting = false
	e.restRemaining = 0
	return nil
}

// Finish finalizes the workout and emits the session summary. Valid only
// on the last exercise with all its sets completed. The engine accepts no
// transitions afterwards.
func (e *Engine) Finish() (domain.WorkoutSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return domain.WorkoutSession{}, ErrAlreadyFinished
	}
	if e.current != len(e.day.Exercises)-1 {
		return domain.WorkoutSession{}, ErrInvalidTransition
	}
	if e.setsCompleted[e.current] < e.day.Exercises[e.current].Sets {
		return domain.WorkoutSession{}, ErrInvalidTransition
	}
	e.finished = true

	completed := 0
	volume := 0.0
	for i, ex := range e.day.Exercises {
		if e.setsCompleted[i] >= ex.Sets {
			completed++
		}
		volume += float64(e.setsCompleted[i]) * float64(repsLowerBound(ex.Details.Reps)) * effectiveWeight(ex.Details.Weight)
	}

	return domain.WorkoutSession{
		ID:                 uuid.NewString(),
		PlanID:             e.plan.ID,
		DayID:              e.day.ID,
		Date:               time.Now().UTC(),
		DurationSeconds:    e.elapsed,
		TotalVolume:        volume,
		CompletedExercises: completed,
		TotalExercises:     len(e.day.Exercises),
	}, nil
}

// Snapshot returns the current state for display.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		PlanID:               e.plan.ID,
		DayID:                e.day.ID,
		DayName:              e.day.Name,
		CurrentExerciseIndex: e.current,
		SetsCompleted:        append([]int{}, e.setsCompleted...),
		ElapsedSeconds:       e.elapsed,
		RestSecondsRemaining: e.restRemaining,
		IsResting:            e.resting,
		Finished:             e.finished,
	}
}

// repsLowerBound parses the leading integer of a reps range ("10-12" is
// 10). Unparseable or zero falls back to the default of 8.
func repsLowerBound(reps string) int {
	head, _, _ := strings.Cut(strings.TrimSpace(reps), "-")
	head = strings.TrimSpace(head)
	digits := head
	for i, r := range head {
		if r < '0' || r > '9' {
			digits = head[:i]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return defaultReps
	}
	return n
}

// effectiveWeight substitutes the placeholder load when no weight was
// recorded, so bodyweight sets still contribute volume.
func effectiveWeight(weight float64) float64 {
	if weight == 0 {
		return defaultWeight
	}
	return weight
}
