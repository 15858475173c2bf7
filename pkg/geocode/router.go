package geocode

import (
	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	router := r.Group("/geocode")
	router.Use(authenticationMiddleware.TokenAuthentication)
	router.GET("/suggestions", handler.Suggestions)
}
