package event

import (
	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/middleware"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	router := r.Group("/events")
	router.Use(authenticationMiddleware.TokenAuthentication)

	router.POST("", handler.Create)
	router.GET("", handler.Search)

	router.GET("/draft", handler.FindDraft)
	router.PATCH("/draft", handler.UpdateDraft)
	router.DELETE("/draft", handler.ResetDraft)
	router.POST("/draft/submit", handler.SubmitDraft)
	router.POST("/draft/suggestions/:index", handler.SelectSuggestion)

	router.GET("/:id", handler.Find)
	router.GET("/:id/calendar", handler.Calendar)
}
