package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health status
func Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Health status
	//
	// Show service health status
	//
	// Responses:
	//   200: Status
	c.JSON(http.StatusOK, Status{Status: "up"})
}

// swagger:model Status
type Status struct {
	Status string `json:"status"`
}
