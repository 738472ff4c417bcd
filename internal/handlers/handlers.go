package handlers

import (
	"errors"
	"net/http"

	apperrors "expohall/internal/errors"
	"expohall/internal/logger"
	"expohall/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// handleServiceError maps the domain error taxonomy to HTTP statuses.
// Conflicts carry the offending resources so the client can show which
// booths or locations to change.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var conflictErr *apperrors.ConflictError
	var dependencyErr *apperrors.DependencyError
	var immutableErr *apperrors.ImmutableStateError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"conflicts": conflictErr.Resources,
		})
	case errors.As(err, &dependencyErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &immutableErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("Unhandled service error",
			"path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
