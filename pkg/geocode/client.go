package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hotspot-events/hotspot/pkg/model"
)

// Place is a single result of a Nominatim search.
type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

// Coordinate parses the position of the place.
func (p Place) Coordinate() (*model.Coordinate, error) {
	latitude, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %v", p.Lat, err)
	}
	longitude, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %v", p.Lon, err)
	}
	return &model.Coordinate{Longitude: longitude, Latitude: latitude}, nil
}

func NewClient(baseURL string, userAgent string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func (c Client) Search(ctx context.Context, query string) ([]Place, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("q", query)
	endpoint := c.baseURL + "/search?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(response.Body)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return nil, fmt.Errorf("geocoding request failed with status %d: %s", response.StatusCode, strings.TrimSpace(string(b)))
	}

	var places []Place
	if err := json.NewDecoder(response.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %v", err)
	}
	return places, nil
}
