package geocode

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewHandler(service suggester) Handler {
	return Handler{service: service}
}

type suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

type Handler struct {
	service suggester
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggestions geocode
func (h Handler) Suggestions(c *gin.Context) {
	// swagger:route GET /geocode/suggestions geocodeSuggestions
	//
	// Location suggestions
	//
	// Suggest place names for a free text location. Queries shorter than three characters yield no suggestions.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: SuggestionsResponse
	//   401: Error
	suggestions, err := h.service.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}
