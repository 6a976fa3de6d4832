package api

import (
	"errors"
	"net/http"

	"fitflow/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the built-in exercise catalog.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ListExercises returns the full catalog.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	c.JSON(http.StatusOK, h.exerciseService.List())
}

// GetExercise returns one catalog entry by id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise")
		}
		return
	}
	c.JSON(http.StatusOK, exercise)
}
