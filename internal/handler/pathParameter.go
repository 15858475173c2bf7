package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/internal/errdef"
)

// GetPathParameter parses the path parameter as a UUID. A malformed value is reported as a bad
// request on the context.
func GetPathParameter(c *gin.Context, parameter string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(parameter))
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("error parsing %q: %v", parameter, err))
		return uuid.Nil, false
	}
	return id, true
}

// GetIndexPathParameter parses the path parameter as a non-negative index.
func GetIndexPathParameter(c *gin.Context, parameter string) (int, bool) {
	index, err := strconv.Atoi(c.Param(parameter))
	if err != nil || index < 0 {
		_ = c.Error(errdef.NewBadRequest("error parsing %q: must be a non-negative integer", parameter))
		return 0, false
	}
	return index, true
}
