package resp

import (
	"errors"
	"log"
	"net/http"

	"github.com/SrwR16/RecipeHub/pkg/geo"
	"github.com/SrwR16/RecipeHub/services"
	"github.com/gin-gonic/gin"
)

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}

// Error writes err with the status of its kind.
func Error(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		ServerError(c, err)
		return
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

// Status maps a service error kind to an HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, geo.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		log.Printf("unhandled error: %v", err)
		return http.StatusInternalServerError
	}
}
