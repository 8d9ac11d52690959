package api

import (
	"errors"
	"net/http"

	"inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

// errorStatus maps the domain error taxonomy onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrCategoryNotEmpty),
		errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrUserHasOrders):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrPartialFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}
