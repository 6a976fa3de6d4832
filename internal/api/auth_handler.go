package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitflow/internal/domain"
	"fitflow/internal/service"
	"fitflow/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login and logout over the store.
type AuthHandler struct {
	store         service.StoreService
	workouts      *session.Manager
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store service.StoreService, workouts *session.Manager, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		store:         store,
		workouts:      workouts,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse excludes the stored credential.
type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

func mapAccountToResponse(account *domain.UserAccount) AccountResponse {
	return AccountResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	}
}

// --- Handler Methods ---

// Register creates a new account with a default profile and authenticates
// the new user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	account, err := h.store.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	token, err := issueToken(h.jwtSecret, account.Email, h.jwtExpiration)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  mapAccountToResponse(account),
	})
}

// Login authenticates an email/password pair and swaps in that user's
// persisted data.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.store.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	state := h.store.State()
	var account *domain.UserAccount
	for i := range state.RegisteredUsers {
		if state.RegisteredUsers[i].Email == req.Email {
			account = &state.RegisteredUsers[i]
			break
		}
	}
	if account == nil {
		abortWithError(c, http.StatusInternalServerError, "Authenticated user missing from registry")
		return
	}

	token, err := issueToken(h.jwtSecret, account.Email, h.jwtExpiration)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  mapAccountToResponse(account),
	})
}

// Logout clears the persisted session pointer and aborts any workout the
// user still has ticking.
func (h *AuthHandler) Logout(c *gin.Context) {
	email, ok := requireActiveUser(c, h.store)
	if !ok {
		return
	}

	// Best effort: no workout in progress is fine.
	_ = h.workouts.Abort(email)

	if err := h.store.Logout(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// requireActiveUser checks that the token's subject is the user the store
// currently has authenticated. Data for user A is never visible while
// user B owns the device session.
func requireActiveUser(c *gin.Context, store service.StoreService) (string, bool) {
	email, err := getUserEmailFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return "", false
	}
	state := store.State()
	if !state.IsAuthenticated || state.CurrentUserEmail != email {
		abortWithError(c, http.StatusUnauthorized, "Token does not match the active session")
		return "", false
	}
	return email, true
}
