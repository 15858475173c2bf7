package geocode

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"
)

const (
	// MinimumQueryLength is the number of characters a query needs before suggestions are looked up.
	MinimumQueryLength = 3
	// MaximumSuggestions caps the number of suggestions returned for a query.
	MaximumSuggestions = 5
)

func NewService(logger *slog.Logger, client searcher, cache cache) *Service {
	return &Service{
		logger: logger,
		client: client,
		cache:  cache,
	}
}

type searcher interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

type cache interface {
	get(ctx context.Context, query string) ([]Place, bool)
	set(ctx context.Context, query string, places []Place)
}

type Service struct {
	logger *slog.Logger
	client searcher
	cache  cache
	group  singleflight.Group
}

// Suggest returns the display names of at most MaximumSuggestions places matching query. Queries shorter than
// MinimumQueryLength characters, counted as typed, yield no suggestions and no request is made.
func (s *Service) Suggest(ctx context.Context, query string) ([]string, error) {
	if utf8.RuneCountInString(query) < MinimumQueryLength {
		return []string{}, nil
	}

	places, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, min(len(places), MaximumSuggestions))
	for _, place := range places {
		if len(suggestions) == MaximumSuggestions {
			break
		}
		suggestions = append(suggestions, place.DisplayName)
	}
	return suggestions, nil
}

// Locate returns the best match for query or nil if nothing matched.
func (s *Service) Locate(ctx context.Context, query string) (*Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	places, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}
	return &places[0], nil
}

func (s *Service) search(ctx context.Context, query string) ([]Place, error) {
	key := strings.ToLower(query)
	if places, ok := s.cache.get(ctx, key); ok {
		return places, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		places, err := s.client.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		s.cache.set(ctx, key, places)
		return places, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Geocoding failed", "query", query, "error", err)
		return nil, err
	}
	return result.([]Place), nil
}
