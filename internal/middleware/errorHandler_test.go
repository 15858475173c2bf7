package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := map[string]struct {
		err         error
		wantStatus  int
		wantMessage string
	}{
		"BadRequest": {
			err:         errdef.NewBadRequest("missing fields: eventName"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "missing fields: eventName",
		},
		"NotFound": {
			err:         errdef.NewNotFound("event not found"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "event not found",
		},
		"Duplicated": {
			err:         errdef.NewDuplicated("user %q already exists", "some@one.org"),
			wantStatus:  http.StatusConflict,
			wantMessage: `user "some@one.org" already exists`,
		},
		"Unauthorized": {
			err:         errdef.NewUnauthorized("token not valid"),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "token not valid",
		},
		"UnsupportedMediaType": {
			err:         errdef.NewUnsupportedMediaType("avatar must be an image"),
			wantStatus:  http.StatusUnsupportedMediaType,
			wantMessage: "avatar must be an image",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) {
				_ = c.Error(test.err)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, test.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, test.wantMessage, body["error"])
		})
	}

	t.Run("HidesInternalErrors", func(t *testing.T) {
		r := gin.New()
		r.Use(CorrelationID(), ErrorHandler())
		r.GET("/", func(c *gin.Context) {
			_ = c.Error(errors.New("connection refused"))
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.Contains(t, w.Body.String(), "something went wrong")
	})

	t.Run("LeavesWrittenResponsesAlone", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"signUp": "/users"})
			_ = c.Error(errdef.NewUnauthorized("signed out"))
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"signUp": "/users"}`, w.Body.String())
	})
}
