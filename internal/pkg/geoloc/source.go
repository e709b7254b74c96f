package geoloc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StaticSource reports fixed coordinates. Fixed-position kiosks use this
// with their configured site location.
type StaticSource struct {
	Latitude  float64
	Longitude float64
}

func (s StaticSource) Locate(ctx context.Context, highAccuracy bool) (Fix, error) {
	return Fix{
		Latitude:   s.Latitude,
		Longitude:  s.Longitude,
		AcquiredAt: time.Now(),
	}, nil
}

// GpsdSource reads a position from a gpsd-style HTTP bridge that returns
// {"lat": ..., "lon": ...}.
type GpsdSource struct {
	url    string
	client *http.Client
}

func NewGpsdSource(url string) *GpsdSource {
	return &GpsdSource{
		url:    url,
		client: &http.Client{},
	}
}

func (s *GpsdSource) Locate(ctx context.Context, highAccuracy bool) (Fix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Fix{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Fix{}, ctx.Err()
		}
		return Fix{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Fix{}, ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return Fix{}, fmt.Errorf("%w: position endpoint returned %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Fix{}, fmt.Errorf("failed to decode position: %w", err)
	}

	return Fix{
		Latitude:   body.Lat,
		Longitude:  body.Lon,
		AcquiredAt: time.Now(),
	}, nil
}
