package navigation

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func NewHandler(logger *slog.Logger, navigation Navigation, broker broker) Handler {
	return Handler{
		logger:     logger,
		navigation: navigation,
		broker:     broker,
	}
}

type broker interface {
	Subscribe() (uuid.UUID, <-chan Alert)
	Unsubscribe(id uuid.UUID)
	Recent() []Alert
}

type Handler struct {
	logger     *slog.Logger
	navigation Navigation
	broker     broker
}

// Find navigation
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /navigation findNavigation
	//
	// Find navigation
	//
	// Links of the navigation bar together with the latest alerts
	//
	// responses:
	//   200: Navigation
	recent := h.broker.Recent()
	alerts := make([]string, 0, len(recent)+len(h.navigation.Alerts))
	for _, alert := range recent {
		alerts = append(alerts, alert.Message)
	}
	alerts = append(alerts, h.navigation.Alerts...)

	c.JSON(http.StatusOK, Navigation{
		Links:  h.navigation.Links,
		Alerts: alerts,
	})
}

// Stream alerts
func (h Handler) Stream(c *gin.Context) {
	// swagger:route GET /notifications/stream streamAlerts
	//
	// Stream alerts
	//
	// Server sent events, one "alert" event per live notification
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Stream
	//   401: Error
	id, alerts := h.broker.Subscribe()
	defer func() {
		h.broker.Unsubscribe(id)
		h.logger.DebugContext(c.Request.Context(), "Closing alert stream", "subscription", id)
	}()

	c.Writer.Header().Set("Content-Type", sse.ContentType)
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case alert, ok := <-alerts:
			if !ok {
				return false
			}
			c.Render(-1, sse.Event{Event: "alert", Data: alert})
			return true
		}
	})
}
