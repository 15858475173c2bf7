package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
)

// DataBinder binds the request body to req. Only JSON and multipart bodies are accepted.
func DataBinder(c *gin.Context, req any) error {
	if c.ContentType() != "application/json" && c.ContentType() != "multipart/form-data" {
		return errdef.NewUnsupportedMediaType("%s only accepts content of type application/json or multipart/form-data", c.FullPath())
	}

	if err := c.ShouldBind(req); err != nil {
		return errdef.NewBadRequest("error binding data: %v", err)
	}

	return nil
}
