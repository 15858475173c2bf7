package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/pkg/model"
)

// GetUserFromContext returns the user put on the context by the authentication middleware.
func GetUserFromContext(c *gin.Context) (*model.User, error) {
	userData, exists := c.Get("user")
	if !exists {
		return nil, errdef.NewUnauthorized("user not found on context")
	}

	user, ok := userData.(*model.User)
	if !ok {
		return nil, errors.New("failed to parse user data")
	}
	return user, nil
}

// GetSessionIDFromContext returns the id of the session the request was authenticated for.
func GetSessionIDFromContext(c *gin.Context) (string, error) {
	sessionID := c.GetString("session")
	if sessionID == "" {
		return "", errdef.NewUnauthorized("session not found on context")
	}
	return sessionID, nil
}
