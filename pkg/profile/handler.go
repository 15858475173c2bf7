package profile

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotspot-events/hotspot/internal/errdef"
	"github.com/hotspot-events/hotspot/internal/handler"
)

func NewHandler(profileService profileService) Handler {
	return Handler{profileService: profileService}
}

type profileService interface {
	Find(ctx context.Context, sessionID string) (Profile, error)
	UpdateName(ctx context.Context, sessionID string, name string) (Profile, error)
	UpdateAvatar(ctx context.Context, sessionID string, data []byte) (Profile, error)
	FindAvatar(ctx context.Context, sessionID string) (*Avatar, error)
}

type Handler struct {
	profileService profileService
}

// Find profile
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /profile findProfile
	//
	// Find profile
	//
	// Profile of the current session
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Profile
	//   401: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := h.profileService.Find(c.Request.Context(), sessionID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

// Update profile
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /profile updateProfile
	//
	// Update profile
	//
	// Set the display name
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Profile
	//   400: Error
	//   401: Error
	//   415: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request UpdateProfileRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := h.profileService.UpdateName(c.Request.Context(), sessionID, request.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpdateAvatarRequest struct {
	Avatar *multipart.FileHeader `form:"avatar" binding:"required"`
}

// UpdateAvatar profile
func (h Handler) UpdateAvatar(c *gin.Context) {
	// swagger:route PUT /profile/avatar updateAvatar
	//
	// Update avatar
	//
	// Upload an image of at most 2 MiB as avatar
	//
	// security:
	//   oauth2:
	//
	// consumes:
	//   - multipart/form-data
	//
	// responses:
	//   200: Profile
	//   400: Error
	//   401: Error
	//   415: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxAvatarSize+1<<20)

	var request UpdateAvatarRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	if request.Avatar.Size > MaxAvatarSize {
		_ = c.Error(errdef.NewBadRequest("avatar must be at most %d bytes", MaxAvatarSize))
		return
	}

	data, err := readFile(request.Avatar)
	if err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := h.profileService.UpdateAvatar(c.Request.Context(), sessionID, data)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errdef.NewBadRequest("failed to open avatar: %v", err)
	}
	defer func(file multipart.File) {
		_ = file.Close()
	}(file)

	data, err := io.ReadAll(io.LimitReader(file, MaxAvatarSize+1))
	if err != nil {
		return nil, errdef.NewBadRequest("failed to read avatar: %v", err)
	}
	return data, nil
}

// FindAvatar profile
func (h Handler) FindAvatar(c *gin.Context) {
	// swagger:route GET /profile/avatar findAvatar
	//
	// Find avatar
	//
	// Download the avatar of the current session
	//
	// security:
	//   oauth2:
	//
	// produces:
	//   - image/*
	//
	// responses:
	//   200: Avatar
	//   401: Error
	//   404: Error
	sessionID, err := handler.GetSessionIDFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	avatar, err := h.profileService.FindAvatar(c.Request.Context(), sessionID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Cache-Control", "private, no-cache")
	c.Data(http.StatusOK, avatar.ContentType, avatar.Data)
}
