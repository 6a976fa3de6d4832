package api

import (
	"fmt"
	"net/http"

	"fitflow/internal/domain"
	"fitflow/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the aggregate user state and profile updates.
type ProfileHandler struct {
	store service.StoreService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(store service.StoreService) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// --- Request/Response Structs ---

// StateResponse is the full UserState with credentials redacted.
type StateResponse struct {
	RegisteredUsers  []AccountResponse       `json:"registeredUsers"`
	CurrentUserEmail string                  `json:"currentUserEmail,omitempty"`
	IsAuthenticated  bool                    `json:"isAuthenticated"`
	Profile          *domain.UserProfile     `json:"profile"`
	Plans            []domain.WorkoutPlan    `json:"plans"`
	Sessions         []domain.WorkoutSession `json:"sessions"`
}

type UpdateProfileRequest struct {
	Name        string   `json:"name" binding:"required"`
	Goal        string   `json:"goal" binding:"required"`
	Level       string   `json:"level" binding:"required"`
	DaysPerWeek int      `json:"daysPerWeek" binding:"required,min=1,max=7"`
	Equipment   []string `json:"equipment"`
	Limitations string   `json:"limitations"`
	Preferences string   `json:"preferences"`
}

// --- Handler Methods ---

// GetState returns the store's full state for the authenticated user.
func (h *ProfileHandler) GetState(c *gin.Context) {
	if _, ok := requireActiveUser(c, h.store); !ok {
		return
	}

	state := h.store.State()
	accounts := make([]AccountResponse, 0, len(state.RegisteredUsers))
	for i := range state.RegisteredUsers {
		accounts = append(accounts, mapAccountToResponse(&state.RegisteredUsers[i]))
	}

	c.JSON(http.StatusOK, StateResponse{
		RegisteredUsers:  accounts,
		CurrentUserEmail: state.CurrentUserEmail,
		IsAuthenticated:  state.IsAuthenticated,
		Profile:          state.Profile,
		Plans:            state.Plans,
		Sessions:         state.Sessions,
	})
}

// UpdateProfile replaces the current user's profile wholesale.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	if _, ok := requireActiveUser(c, h.store); !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal := domain.Goal(req.Goal)
	level := domain.Level(req.Level)
	if !domain.ValidGoal(goal) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unknown goal %q", req.Goal))
		return
	}
	if !domain.ValidLevel(level) {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Unknown level %q", req.Level))
		return
	}

	profile := domain.UserProfile{
		Name:        req.Name,
		Goal:        goal,
		Level:       level,
		DaysPerWeek: req.DaysPerWeek,
		Equipment:   req.Equipment,
		Limitations: req.Limitations,
		Preferences: req.Preferences,
	}
	if err := h.store.UpdateProfile(c.Request.Context(), profile); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
