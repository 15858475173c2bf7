package notification

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/handler"
	"github.com/hotspot-events/hotspot/pkg/model"
)

func NewHandler(notifier notifier) Handler {
	return Handler{notifier: notifier}
}

type notifier interface {
	EventCreated(ctx context.Context, recipient string, event model.Event) error
}

type Handler struct {
	notifier notifier
}

type SendEmailRequest struct {
	EventName     string `json:"eventName" binding:"required,notblank"`
	EventDate     string `json:"eventDate" binding:"required,datetime=2006-01-02"`
	EventTime     string `json:"eventTime" binding:"required,datetime=15:04"`
	EventLocation string `json:"eventLocation" binding:"required,notblank"`
}

type SendEmailResponse struct {
	Message string `json:"message"`
}

// SendEmail notification
func (h Handler) SendEmail(c *gin.Context) {
	// swagger:route POST /api/sendEmail sendEmail
	//
	// Send event email
	//
	// Email the details of an event, with a calendar attachment, to the signed in user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: SendEmailResponse
	//   400: Error
	//   401: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request SendEmailRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event := model.Event{
		EventName:     request.EventName,
		EventDate:     request.EventDate,
		EventTime:     request.EventTime,
		EventLocation: request.EventLocation,
		UserID:        user.ID,
	}
	if err := h.notifier.EventCreated(c.Request.Context(), user.Email, event); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SendEmailResponse{Message: "Email sent successfully"})
}
