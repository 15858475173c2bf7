package navigation

import (
	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	r.GET("/navigation", handler.Find)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/notifications/stream", handler.Stream)
}
