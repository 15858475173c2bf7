package profile

import (
	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	router := r.Group("/profile")
	router.Use(authenticationMiddleware.TokenAuthentication)
	router.GET("", handler.Find)
	router.PUT("", handler.Update)
	router.GET("/avatar", handler.FindAvatar)
	router.PUT("/avatar", handler.UpdateAvatar)
}
