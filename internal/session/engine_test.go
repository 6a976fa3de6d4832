package session

import (
	"testing"

	"fitflow/internal/domain"

	"github.com/stretchr/testify/require"
)

func dayWith(exercises ...domain.WorkoutExercise) domain.WorkoutDay {
	return domain.WorkoutDay{ID: "day-1", Name: "Day A - Chest", Exercises: exercises}
}

func exercise(sets int, reps string, weight float64, rest int) domain.WorkoutExercise {
	return domain.WorkoutExercise{
		ExerciseID:   "ex",
		ExerciseName: "Exercise",
		Sets:         sets,
		Details:      domain.SetDetails{Reps: reps, Weight: weight, RestSeconds: rest},
	}
}

func newTestEngine(t *testing.T, day domain.WorkoutDay) *Engine {
	t.Helper()
	e, err := NewEngine(domain.WorkoutPlan{ID: "plan-1"}, day)
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsEmptyDay(t *testing.T) {
	_, err := NewEngine(domain.WorkoutPlan{ID: "p"}, dayWith())
	require.ErrorIs(t, err, ErrEmptyDay)
}

func TestCompleteSetEntersRestWhileSetsRemain(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(3, "8-12", 60, 90)))

	require.NoError(t, e.CompleteSet())
	snap := e.Snapshot()
	require.Equal(t, []int{1}, snap.SetsCompleted)
	require.True(t, snap.IsResting)
	require.Equal(t, 90, snap.RestSecondsRemaining)
}

func TestCompleteSetWhileRestingIsRejected(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(3, "8-12", 60, 90)))

	require.NoError(t, e.CompleteSet())
	err := e.CompleteSet()
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, []int{1}, e.Snapshot().SetsCompleted)
}

func TestLastSetDoesNotEnterRest(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(2, "8-12", 60, 90)))

	require.NoError(t, e.CompleteSet())
	require.NoError(t, e.SkipRest())
	require.NoError(t, e.CompleteSet())

	snap := e.Snapshot()
	require.Equal(t, []int{2}, snap.SetsCompleted)
	require.False(t, snap.IsResting)
}

func TestCompleteSetBeyondPrescribedIsNoOp(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(1, "8-12", 60, 90)))

	require.NoError(t, e.CompleteSet())
	err := e.CompleteSet()
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, []int{1}, e.Snapshot().SetsCompleted)
}

func TestRestCountdownNeverGoesNegative(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(3, "8-12", 60, 2)))

	require.NoError(t, e.CompleteSet())
	require.True(t, e.Snapshot().IsResting)

	e.Tick()
	require.Equal(t, 1, e.Snapshot().RestSecondsRemaining)
	e.Tick()
	snap := e.Snapshot()
	require.Equal(t, 0, snap.RestSecondsRemaining)
	require.False(t, snap.IsResting, "reaching zero exits resting")

	e.Tick()
	require.Equal(t, 0, e.Snapshot().RestSecondsRemaining)
}

func TestElapsedCounterNeverPauses(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(3, "8-12", 60, 5)))

	require.NoError(t, e.CompleteSet())
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	snap := e.Snapshot()
	require.Equal(t, 10, snap.ElapsedSeconds, "elapsed keeps counting through rest")
	require.False(t, snap.IsResting)
}

func TestZeroRestSecondsSkipsRestingState(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(3, "8-12", 60, 0)))

	require.NoError(t, e.CompleteSet())
	require.False(t, e.Snapshot().IsResting)
	require.NoError(t, e.CompleteSet())
}

func TestSkipRestEndsCountdownEarly(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(3, "8-12", 60, 120)))

	require.NoError(t, e.CompleteSet())
	require.NoError(t, e.SkipRest())
	snap := e.Snapshot()
	require.False(t, snap.IsResting)
	require.Equal(t, 0, snap.RestSecondsRemaining)
	require.NoError(t, e.CompleteSet())
}

func TestAdvanceRequiresCompletedExercise(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(2, "8-12", 60, 0), exercise(2, "10-15", 20, 0)))

	require.ErrorIs(t, e.Advance(), ErrInvalidTransition)

	require.NoError(t, e.CompleteSet())
	require.NoError(t, e.CompleteSet())
	require.NoError(t, e.Advance())
	require.Equal(t, 1, e.Snapshot().CurrentExerciseIndex)
}

func TestAdvancePastLastExerciseIsRejected(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(1, "8-12", 60, 0)))

	require.NoError(t, e.CompleteSet())
	require.ErrorIs(t, e.Advance(), ErrInvalidTransition)
}

func TestAdvanceClearsResting(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(1, "8-12", 60, 0), exercise(1, "8", 10, 0)))

	require.NoError(t, e.CompleteSet())
	require.NoError(t, e.Advance())
	require.False(t, e.Snapshot().IsResting)
}

func TestFinishBeforeLastExerciseIsRejected(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(1, "8-12", 60, 0), exercise(1, "8", 10, 0)))

	require.NoError(t, e.CompleteSet())
	_, err := e.Finish()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFinishComputesSummary(t *testing.T) {
	e := newTestEngine(t, dayWith(
		exercise(3, "10-12", 50, 0), // 3 sets x 10 reps x 50 = 1500
		exercise(2, "junk", 0, 0),   // 2 sets x 8 (default) x 10 (default) = 160
	))

	for i := 0; i < 3; i++ {
		require.NoError(t, e.CompleteSet())
	}
	require.NoError(t, e.Advance())
	for i := 0; i < 2; i++ {
		require.NoError(t, e.CompleteSet())
	}

	for i := 0; i < 42; i++ {
		e.Tick()
	}

	summary, err := e.Finish()
	require.NoError(t, err)
	require.Equal(t, "plan-1", summary.PlanID)
	require.Equal(t, "day-1", summary.DayID)
	require.Equal(t, 2, summary.CompletedExercises)
	require.Equal(t, 2, summary.TotalExercises)
	require.Equal(t, 1660.0, summary.TotalVolume)
	require.Equal(t, 42, summary.DurationSeconds)
	require.NotEmpty(t, summary.ID)
	require.False(t, summary.Date.IsZero())
}

func TestFinishIsTerminal(t *testing.T) {
	e := newTestEngine(t, dayWith(exercise(1, "8-12", 60, 0)))

	require.NoError(t, e.CompleteSet())
	_, err := e.Finish()
	require.NoError(t, err)

	_, err = e.Finish()
	require.ErrorIs(t, err, ErrAlreadyFinished)
	require.ErrorIs(t, e.CompleteSet(), ErrAlreadyFinished)
	require.False(t, e.Tick(), "run loop stops after finish")
}

func TestRepsLowerBound(t *testing.T) {
	cases := []struct {
		reps string
		want int
	}{
		{"10-12", 10},
		{"8", 8},
		{"15-20", 15},
		{" 12 - 15", 12},
		{"", 8},
		{"to failure", 8},
		{"0-5", 8},
		{"-5", 8},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, repsLowerBound(tc.reps), "reps %q", tc.reps)
	}
}

func TestEffectiveWeight(t *testing.T) {
	require.Equal(t, 10.0, effectiveWeight(0))
	require.Equal(t, 62.5, effectiveWeight(62.5))
}
