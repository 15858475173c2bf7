package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	router := r.Group("/api")
	router.Use(authenticationMiddleware.TokenAuthentication)
	router.POST("/sendEmail", handler.SendEmail)
}
