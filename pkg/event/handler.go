package event

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotspot-events/hotspot/internal/handler"
	"github.com/hotspot-events/hotspot/pkg/calendar"
	"github.com/hotspot-events/hotspot/pkg/model"
)

func NewHandler(eventService eventService, draftService draftService, location *time.Location) Handler {
	return Handler{
		eventService: eventService,
		draftService: draftService,
		location:     location,
	}
}

type eventService interface {
	Create(ctx context.Context, user *model.User, fields model.Event) (*Created, error)
	FindById(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Search(ctx context.Context, query string) ([]model.Event, error)
	Detail(ctx context.Context, id uuid.UUID) (*Detail, error)
}

type draftService interface {
	Get(ctx context.Context, sessionID string) (Draft, error)
	UpdateField(ctx context.Context, sessionID string, name string, value string) (Draft, error)
	SelectSuggestion(ctx context.Context, sessionID string, index int) (Draft, error)
	Reset(ctx context.Context, sessionID string) error
	Submit(ctx context.Context, sessionID string, user *model.User) (*Created, error)
}

type Handler struct {
	eventService eventService
	draftService draftService
	location     *time.Location
}

type CreateEventRequest struct {
	EventName     string `json:"eventName" binding:"required,notblank"`
	EventDate     string `json:"eventDate" binding:"required,datetime=2006-01-02"`
	EventTime     string `json:"eventTime" binding:"required,datetime=15:04"`
	EventLocation string `json:"eventLocation" binding:"required,notblank"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create an event. The creator is emailed the details, whether that succeeded is reported in the response
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Created
	//   400: Error
	//   401: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.eventService.Create(c.Request.Context(), user, model.Event{
		EventName:     request.EventName,
		EventDate:     request.EventDate,
		EventTime:     request.EventTime,
		EventLocation: request.EventLocation,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Search events
func (h Handler) Search(c *gin.Context) {
	// swagger:route GET /events searchEvents
	//
	// Search events
	//
	// Events whose name or location contains the query, ignoring case, ordered by date and time. Every event is returned if the query is empty
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Event
	//   401: Error
	events, err := h.eventService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if events == nil {
		events = []model.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// Find event
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /events/{id} findEvent
	//
	// Find event
	//
	// Find an event along with a map of its location
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Detail
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	detail, err := h.eventService.Detail(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Calendar event
func (h Handler) Calendar(c *gin.Context) {
	// swagger:route GET /events/{id}/calendar eventCalendar
	//
	// Export event
	//
	// Download the event as an iCalendar file
	//
	// security:
	//   oauth2:
	//
	// produces:
	//   - text/calendar
	//
	// responses:
	//   200: Calendar
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ics, err := calendar.Export(*event, h.location)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", calendar.FileName(*event)))
	c.Data(http.StatusOK, calendar.ContentType, ics)
}

// FindDraft event
func (h Handler) FindDraft(c *gin.Context) {
	// swagger:route GET /events/draft findDraft
	//
	// Find draft
	//
	// The event being filled in within the current session
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Draft
	//   401: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	draft, err := h.draftService.Get(c.Request.Context(), sessionID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

type UpdateDraftRequest struct {
	Name  string `json:"name" binding:"required,oneOf=eventName eventDate eventTime eventLocation"`
	Value string `json:"value"`
}

// UpdateDraft event
func (h Handler) UpdateDraft(c *gin.Context) {
	// swagger:route PATCH /events/draft updateDraft
	//
	// Update draft
	//
	// Set a single field of the draft. Updating the location refreshes the location suggestions
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Draft
	//   400: Error
	//   401: Error
	//   415: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request UpdateDraftRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	draft, err := h.draftService.UpdateField(c.Request.Context(), sessionID, request.Name, request.Value)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// SelectSuggestion event
func (h Handler) SelectSuggestion(c *gin.Context) {
	// swagger:route POST /events/draft/suggestions/{index} selectSuggestion
	//
	// Select suggestion
	//
	// Use the location suggestion at the given index as the location of the draft
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Draft
	//   400: Error
	//   401: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	index, ok := handler.GetIndexPathParameter(c, "index")
	if !ok {
		return
	}

	draft, err := h.draftService.SelectSuggestion(c.Request.Context(), sessionID, index)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// ResetDraft event
func (h Handler) ResetDraft(c *gin.Context) {
	// swagger:route DELETE /events/draft resetDraft
	//
	// Reset draft
	//
	// Discard the draft
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   202:
	//   401: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.draftService.Reset(c.Request.Context(), sessionID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}

// SubmitDraft event
func (h Handler) SubmitDraft(c *gin.Context) {
	// swagger:route POST /events/draft/submit submitDraft
	//
	// Submit draft
	//
	// Create an event from the draft. The draft is discarded once the event is created and kept otherwise
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Created
	//   400: Error
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.draftService.Submit(c.Request.Context(), sessionID, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}
