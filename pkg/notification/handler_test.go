package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/internal/handler"
	"github.com/hotspot-events/hotspot/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_SendEmail(t *testing.T) {
	require.NoError(t, handler.RegisterValidation())
	user := &model.User{ID: 1, Email: "someone@example.org"}
	notifier := &mockNotifier{}
	notifier.
		On("EventCreated", "someone@example.org", model.Event{
			EventName:     "Block Party",
			EventDate:     "2025-06-01",
			EventTime:     "18:00",
			EventLocation: "City Hall",
			UserID:        1,
		}).
		Return(nil)
	h := NewHandler(notifier)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", user)
	c.Request = newJSONRequest(t, SendEmailRequest{
		EventName:     "Block Party",
		EventDate:     "2025-06-01",
		EventTime:     "18:00",
		EventLocation: "City Hall",
	})

	h.SendEmail(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"Email sent successfully"}`, recorder.Body.String())
	notifier.AssertExpectations(t)
}

func TestHandler_SendEmail_InvalidBody(t *testing.T) {
	require.NoError(t, handler.RegisterValidation())

	tests := map[string]SendEmailRequest{
		"BlankName":   {EventName: "  ", EventDate: "2025-06-01", EventTime: "18:00", EventLocation: "City Hall"},
		"InvalidDate": {EventName: "Block Party", EventDate: "01/06/2025", EventTime: "18:00", EventLocation: "City Hall"},
		"InvalidTime": {EventName: "Block Party", EventDate: "2025-06-01", EventTime: "6pm", EventLocation: "City Hall"},
		"NoLocation":  {EventName: "Block Party", EventDate: "2025-06-01", EventTime: "18:00"},
	}

	for name, request := range tests {
		t.Run(name, func(t *testing.T) {
			notifier := &mockNotifier{}
			h := NewHandler(notifier)

			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Set("user", &model.User{ID: 1, Email: "someone@example.org"})
			c.Request = newJSONRequest(t, request)

			h.SendEmail(c)

			require.Len(t, c.Errors, 1)
			assert.True(t, errdef.IsBadRequest(c.Errors.Last()))
			notifier.AssertNotCalled(t, "EventCreated", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_SendEmail_Fails(t *testing.T) {
	require.NoError(t, handler.RegisterValidation())
	notifier := &mockNotifier{}
	notifier.
		On("EventCreated", "someone@example.org", mock.AnythingOfType("model.Event")).
		Return(errors.New("smtp unavailable"))
	h := NewHandler(notifier)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", &model.User{ID: 1, Email: "someone@example.org"})
	c.Request = newJSONRequest(t, SendEmailRequest{
		EventName:     "Block Party",
		EventDate:     "2025-06-01",
		EventTime:     "18:00",
		EventLocation: "City Hall",
	})

	h.SendEmail(c)

	require.Len(t, c.Errors, 1)
	assert.ErrorContains(t, c.Errors.Last(), "smtp unavailable")
}

func newJSONRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	request := httptest.NewRequest(http.MethodPost, "/api/sendEmail", bytes.NewReader(b))
	request.Header.Set("Content-Type", "application/json")
	return request
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) EventCreated(_ context.Context, recipient string, event model.Event) error {
	return m.Called(recipient, event).Error(0)
}
