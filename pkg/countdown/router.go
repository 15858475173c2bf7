package countdown

import (
	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	router := r.Group("/events/:id/countdown")
	router.Use(authenticationMiddleware.TokenAuthentication)
	router.GET("", handler.Find)
	router.GET("/stream", handler.Stream)
}
