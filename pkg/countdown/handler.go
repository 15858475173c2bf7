package countdown

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/internal/handler"
	"github.com/hotspot-events/hotspot/pkg/model"
)

func NewHandler(eventService eventService, location *time.Location) Handler {
	return Handler{
		eventService: eventService,
		location:     location,
		interval:     time.Second,
		now:          time.Now,
	}
}

type eventService interface {
	FindById(ctx context.Context, id uuid.UUID) (*model.Event, error)
}

type Handler struct {
	eventService eventService
	location     *time.Location
	interval     time.Duration
	now          func() time.Time
}

// Countdown of an event
// swagger:model Countdown
type Countdown struct {
	Target    time.Time `json:"target"`
	Remaining string    `json:"remaining"`
	Started   bool      `json:"started"`
}

// Find countdown
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /events/{id}/countdown findCountdown
	//
	// Find countdown
	//
	// Time left until the event starts
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Countdown
	//   400: Error
	//   401: Error
	//   404: Error
	start, ok := h.start(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.countdown(start))
}

// Stream countdown
func (h Handler) Stream(c *gin.Context) {
	// swagger:route GET /events/{id}/countdown/stream streamCountdown
	//
	// Stream countdown
	//
	// Server sent events, one "countdown" event per second, until the event has started
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Stream
	//   400: Error
	//   401: Error
	//   404: Error
	start, ok := h.start(c)
	if !ok {
		return
	}

	c.Writer.Header().Set("Content-Type", sse.ContentType)
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var id int
	c.Stream(func(w io.Writer) bool {
		countdown := h.countdown(start)
		id++
		c.Render(-1, sse.Event{
			Id:    strconv.Itoa(id),
			Event: "countdown",
			Data:  countdown.Remaining,
		})
		if countdown.Started {
			return false
		}

		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
			return true
		}
	})
}

func (h Handler) countdown(start time.Time) Countdown {
	remaining := Format(start, h.now())
	return Countdown{
		Target:    start.UTC(),
		Remaining: remaining,
		Started:   remaining == Started,
	}
}

func (h Handler) start(c *gin.Context) (time.Time, bool) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return time.Time{}, false
	}

	event, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return time.Time{}, false
	}

	start, err := event.Start(h.location)
	if err != nil {
		_ = c.Error(err)
		return time.Time{}, false
	}
	return start, true
}
