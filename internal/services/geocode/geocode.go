// Package geocode resolves coordinates to human-readable place names via
// Nominatim. Lookups are decorative for advisories, so failures degrade
// to coordinate placeholders instead of errors.
package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rs-patil/cropadvisor/internal/metrics"
	"github.com/rs-patil/cropadvisor/internal/model"
	"github.com/rs-patil/cropadvisor/internal/services/coord"
	"github.com/rs-patil/cropadvisor/internal/services/upstream"
	"github.com/rs-patil/cropadvisor/pkg/ttlcache"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Service reverse-geocodes coordinates.
type Service struct {
	baseURL string
	client  *upstream.Client
	cache   *ttlcache.Cache[model.LocationInfo]
	log     zerolog.Logger
}

// Option tweaks Service construction.
type Option func(*Service)

// WithBaseURL overrides the provider endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(s *Service) { s.baseURL = u }
}

func New(timeout, cacheTTL time.Duration, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		baseURL: defaultBaseURL,
		client:  upstream.New("nominatim", timeout, 30*time.Second, log),
		cache:   ttlcache.New[model.LocationInfo](cacheTTL, 1000),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		State         string `json:"state"`
		Country       string `json:"country"`
		Postcode      string `json:"postcode"`
		StateDistrict string `json:"state_district"`
		County        string `json:"county"`
	} `json:"address"`
}

// Reverse resolves the coordinates to a location. On failure it returns
// placeholder values, never an error.
func (s *Service) Reverse(ctx context.Context, lat, lon float64) model.LocationInfo {
	key := coord.Key(lat, lon)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	url := fmt.Sprintf("%s/reverse?lat=%.6f&lon=%.6f&format=json&zoom=10", s.baseURL, lat, lon)

	var resp reverseResponse
	if err := s.client.GetJSON(ctx, url, &resp); err != nil {
		s.log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).
			Msg("geocoder unavailable, using placeholder location")
		metrics.FallbacksTotal.WithLabelValues("nominatim").Inc()
		return Placeholder(lat, lon)
	}

	info := model.LocationInfo{
		DisplayName: resp.DisplayName,
		City:        firstNonEmpty(resp.Address.City, resp.Address.Town, resp.Address.Village, "Unknown"),
		State:       firstNonEmpty(resp.Address.State, "Unknown"),
		Country:     firstNonEmpty(resp.Address.Country, "Unknown"),
		Postcode:    firstNonEmpty(resp.Address.Postcode, "Unknown"),
		District:    firstNonEmpty(resp.Address.StateDistrict, resp.Address.County, "Unknown"),
	}
	if info.DisplayName == "" {
		info.DisplayName = fmt.Sprintf("Location %.2f, %.2f", lat, lon)
	}
	s.cache.Set(key, info)
	return info
}

// Placeholder is the location returned when the geocoder is unreachable.
func Placeholder(lat, lon float64) model.LocationInfo {
	return model.LocationInfo{
		DisplayName: fmt.Sprintf("Location %.2f, %.2f", lat, lon),
		City:        "Unknown",
		State:       "Unknown",
		Country:     "Unknown",
		Postcode:    "Unknown",
		District:    "Unknown",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
