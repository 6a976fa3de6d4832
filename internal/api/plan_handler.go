package api

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fitflow/internal/domain"
	"fitflow/internal/generator"
	"fitflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlanHandler manages workout plans: manual creation, deletion, activation
// and AI generation.
type PlanHandler struct {
	store   service.StoreService
	planGen generator.PlanGenerator

	// One outstanding generation per user; re-submission while pending is
	// rejected rather than queued.
	pendingMu sync.Mutex
	pending   map[string]bool
}

// NewPlanHandler creates a new PlanHandler. planGen may be nil when no
// generator endpoint is configured; the generate route then reports the
// feature as unavailable.
func NewPlanHandler(store service.StoreService, planGen generator.PlanGenerator) *PlanHandler {
	return &PlanHandler{
		store:   store,
		planGen: planGen,
		pending: make(map[string]bool),
	}
}

// --- Request/Response Structs ---

type CreatePlanRequest struct {
	Name     string             `json:"name" binding:"required"`
	IsActive bool               `json:"isActive"`
	Days     []CreateDayRequest `json:"days" binding:"required,min=1"`
}

type CreateDayRequest struct {
	Name      string                  `json:"name" binding:"required"`
	Exercises []CreateExerciseRequest `json:"exercises"`
}

type CreateExerciseRequest struct {
	ExerciseID   string   `json:"exerciseId"`
	ExerciseName string   `json:"exerciseName" binding:"required"`
	MuscleGroup  string   `json:"muscleGroup"`
	Sets         int      `json:"sets" binding:"required,min=1"`
	Reps         string   `json:"reps"`
	Weight       float64  `json:"weight"`
	RestSeconds  int      `json:"restSeconds"`
	Notes        string   `json:"notes"`
	Instructions []string `json:"instructions"`
}

func (req *CreatePlanRequest) toDomain() domain.WorkoutPlan {
	plan := domain.WorkoutPlan{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
		IsActive:  req.IsActive,
		Days:      make([]domain.WorkoutDay, 0, len(req.Days)),
	}
	for _, day := range req.Days {
		d := domain.WorkoutDay{
			ID:        uuid.NewString(),
			Name:      day.Name,
			Exercises: make([]domain.WorkoutExercise, 0, len(day.Exercises)),
		}
		for _, ex := range day.Exercises {
			exerciseID := ex.ExerciseID
			if exerciseID == "" {
				exerciseID = uuid.NewString()
			}
			instructions := ex.Instructions
			if instructions == nil {
				instructions = []string{}
			}
			d.Exercises = append(d.Exercises, domain.WorkoutExercise{
				ExerciseID:   exerciseID,
				ExerciseName: ex.ExerciseName,
				MuscleGroup:  ex.MuscleGroup,
				Sets:         ex.Sets,
				Details: domain.SetDetails{
					Reps:        ex.Reps,
					Weight:      ex.Weight,
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

// --- Handler Methods ---

// CreatePlan saves a plan built in the UI. An active plan deactivates all
// siblings.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	if _, ok := requireActiveUser(c, h.store); !ok {
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan := req.toDomain()
	if err := h.store.AddPlan(c.Request.Context(), plan); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// DeletePlan removes a plan by id. Logged sessions that reference it are
// kept.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if _, ok := requireActiveUser(c, h.store); !ok {
		return
	}

	if err := h.store.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivatePlan marks the given plan active and every other plan inactive.
// An unknown id changes nothing.
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	if _, ok := requireActiveUser(c, h.store); !ok {
		return
	}

	if err := h.store.SetActivePlan(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to activate plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// GeneratePlan asks the plan generator for a plan matching the current
// profile and saves it as the active plan. Failures are surfaced as
// retryable errors; no partial plan is ever saved.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	email, ok := requireActiveUser(c, h.store)
	if !ok {
		return
	}
	if h.planGen == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Plan generation is not configured")
		return
	}

	state := h.store.State()
	if state.Profile == nil {
		abortWithError(c, http.StatusBadRequest, "Profile is required before generating a plan")
		return
	}

	h.pendingMu.Lock()
	if h.pending[email] {
		h.pendingMu.Unlock()
		abortWithError(c, http.StatusConflict, "A generation request is already in flight")
		return
	}
	h.pending[email] = true
	h.pendingMu.Unlock()
	defer func() {
		h.pendingMu.Lock()
		delete(h.pending, email)
		h.pendingMu.Unlock()
	}()

	// The request context aborts the upstream call when the client goes
	// away.
	plan, err := h.planGen.Generate(c.Request.Context(), *state.Profile)
	if err != nil {
		if errors.Is(err, generator.ErrGenerationFailed) {
			abortWithError(c, http.StatusBadGateway, "Plan generation failed, please try again")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during generation")
		}
		return
	}

	if err := h.store.AddPlan(c.Request.Context(), *plan); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save generated plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}
