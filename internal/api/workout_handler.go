package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitflow/internal/service"
	"fitflow/internal/session"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler drives the active-workout engine: start, set completion,
// rest control, exercise advance, finish and abort.
type WorkoutHandler struct {
	store    service.StoreService
	workouts *session.Manager
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(store service.StoreService, workouts *session.Manager) *WorkoutHandler {
	return &WorkoutHandler{store: store, workouts: workouts}
}

// --- Request/Response Structs ---

type StartWorkoutRequest struct {
	PlanID string `json:"planId" binding:"required"`
	DayID  string `json:"dayId" binding:"required"`
}

// --- Handler Methods ---

// Start begins a workout over one plan day.
func (h *WorkoutHandler) Start(c *gin.Context) {
	email, ok := requireActiveUser(c, h.store)
	if !ok {
		return
	}

	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	snap, err := h.workouts.Start(email, req.PlanID, req.DayID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "Plan or day not found")
		case errors.Is(err, session.ErrSessionInProgress):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, session.ErrEmptyDay):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start workout")
		}
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// Snapshot returns the current state of the running workout.
func (h *WorkoutHandler) Snapshot(c *gin.Context) {
	engine, ok := h.currentEngine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot())
}

// CompleteSet records one finished set for the current exercise.
func (h *WorkoutHandler) CompleteSet(c *gin.Context) {
	engine, ok := h.currentEngine(c)
	if !ok {
		return
	}
	if err := engine.CompleteSet(); err != nil {
		h.mapTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot())
}

// SkipRest ends the rest countdown early.
func (h *WorkoutHandler) SkipRest(c *gin.Context) {
	engine, ok := h.currentEngine(c)
	if !ok {
		return
	}
	if err := engine.SkipRest(); err != nil {
		h.mapTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot())
}

// Advance moves to the next exercise.
func (h *WorkoutHandler) Advance(c *gin.Context) {
	engine, ok := h.currentEngine(c)
	if !ok {
		return
	}
	if err := engine.Advance(); err != nil {
		h.mapTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot())
}

// Finish finalizes the workout and persists the session summary.
func (h *WorkoutHandler) Finish(c *gin.Context) {
	email, ok := requireActiveUser(c, h.store)
	if !ok {
		return
	}

	summary, err := h.workouts.Finish(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoActiveSession):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, session.ErrInvalidTransition):
			abortWithError(c, http.StatusConflict, "Workout is not complete yet")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to finish workout")
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Abort tears the workout down without recording a session.
func (h *WorkoutHandler) Abort(c *gin.Context) {
	email, ok := requireActiveUser(c, h.store)
	if !ok {
		return
	}
	if err := h.workouts.Abort(email); err != nil {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) currentEngine(c *gin.Context) (*session.Engine, bool) {
	email, ok := requireActiveUser(c, h.store)
	if !ok {
		return nil, false
	}
	engine, err := h.workouts.Get(email)
	if err != nil {
		abortWithError(c, http.StatusNotFound, err.Error())
		return nil, false
	}
	return engine, true
}

func (h *WorkoutHandler) mapTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidTransition):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrAlreadyFinished):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Workout update failed")
	}
}
