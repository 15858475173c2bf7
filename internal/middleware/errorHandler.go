package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
)

// ErrorHandler turns the last error pushed onto the gin context into a JSON response. Responses
// already written by a handler or middleware are left untouched.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil || c.Writer.Written() {
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(statusOf(err), gin.H{"error": messageOf(c, err)})
	}
}

func statusOf(err error) int {
	switch {
	case errdef.IsBadRequest(err):
		return http.StatusBadRequest
	case errdef.IsForbidden(err):
		return http.StatusForbidden
	case errdef.IsDuplicated(err), errdef.IsConflict(err):
		return http.StatusConflict
	case errdef.IsNotFound(err):
		return http.StatusNotFound
	case errdef.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errdef.IsUnsupportedMediaType(err):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func messageOf(c *gin.Context, err error) string {
	if statusOf(err) != http.StatusInternalServerError {
		return err.Error()
	}
	id, _ := GetCorrelationID(c.Request.Context())
	return fmt.Sprintf("something went wrong. We'll look into it if you send us the id %q :)", id)
}
