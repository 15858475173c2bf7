package profile

import (
	"context"
	"net/http"
	"strings"

	"github.com/hotspot-events/hotspot/internal/errdef"
)

const (
	// MaxAvatarSize is the largest avatar accepted, in bytes.
	MaxAvatarSize = 2 << 20

	profileField = "profile"
	avatarField  = "avatar"
)

// Profile of the signed in user. It's kept for as long as the session lasts.
// swagger:model
type Profile struct {
	Name      string `json:"name"`
	HasAvatar bool   `json:"hasAvatar"`
}

type Avatar struct {
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

func NewService(store sessionStore) *Service {
	return &Service{store: store}
}

type sessionStore interface {
	Get(ctx context.Context, sessionID string, field string, v any) (bool, error)
	Set(ctx context.Context, sessionID string, field string, v any) error
}

type Service struct {
	store sessionStore
}

func (s Service) Find(ctx context.Context, sessionID string) (Profile, error) {
	var profile Profile
	if _, err := s.store.Get(ctx, sessionID, profileField, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (s Service) UpdateName(ctx context.Context, sessionID string, name string) (Profile, error) {
	profile, err := s.Find(ctx, sessionID)
	if err != nil {
		return Profile{}, err
	}

	profile.Name = strings.TrimSpace(name)
	if err := s.store.Set(ctx, sessionID, profileField, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// UpdateAvatar stores data as the avatar. The content type is sniffed from data and has to be an image.
func (s Service) UpdateAvatar(ctx context.Context, sessionID string, data []byte) (Profile, error) {
	if len(data) == 0 {
		return Profile{}, errdef.NewBadRequest("avatar is empty")
	}
	if len(data) > MaxAvatarSize {
		return Profile{}, errdef.NewBadRequest("avatar must be at most %d bytes", MaxAvatarSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return Profile{}, errdef.NewUnsupportedMediaType("avatar must be an image, got %s", contentType)
	}

	profile, err := s.Find(ctx, sessionID)
	if err != nil {
		return Profile{}, err
	}

	if err := s.store.Set(ctx, sessionID, avatarField, Avatar{ContentType: contentType, Data: data}); err != nil {
		return Profile{}, err
	}

	profile.HasAvatar = true
	if err := s.store.Set(ctx, sessionID, profileField, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (s Service) FindAvatar(ctx context.Context, sessionID string) (*Avatar, error) {
	var avatar Avatar
	found, err := s.store.Get(ctx, sessionID, avatarField, &avatar)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errdef.NewNotFound("avatar not found")
	}
	return &avatar, nil
}
