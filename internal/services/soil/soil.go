// Package soil serves soil composition data from SoilGrids, derives
// indicative NPK levels from it, and degrades to a deterministic
// synthetic profile when the provider is unreachable.
package soil

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/rs-patil/cropadvisor/internal/metrics"
	"github.com/rs-patil/cropadvisor/internal/model"
	"github.com/rs-patil/cropadvisor/internal/services/coord"
	"github.com/rs-patil/cropadvisor/internal/services/upstream"
	"github.com/rs-patil/cropadvisor/pkg/ttlcache"
)

const defaultBaseURL = "https://rest.isric.org/soilgrids/v2.0"

// Service fetches and caches soil profiles.
type Service struct {
	baseURL string
	client  *upstream.Client
	cache   *ttlcache.Cache[model.SoilData]
	log     zerolog.Logger
}

// Option tweaks Service construction.
type Option func(*Service)

// WithBaseURL overrides the provider endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(s *Service) { s.baseURL = u }
}

// New builds the soil service. Soil composition changes slowly, so the
// cache TTL can be generous.
func New(timeout, cacheTTL time.Duration, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		baseURL: defaultBaseURL,
		client:  upstream.New("soilgrids", timeout, 30*time.Second, log),
		cache:   ttlcache.New[model.SoilData](cacheTTL, 1000),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// gridsResponse mirrors the provider's layered property format. Values
// are reported for the 0-5cm depth in provider units: g/kg for texture
// fractions, pH*10, dg/kg for organic carbon.
type gridsResponse struct {
	Properties struct {
		Layers []struct {
			Name   string `json:"name"`
			Depths []struct {
				Label  string `json:"label"`
				Values struct {
					Mean *float64 `json:"mean"`
				} `json:"values"`
			} `json:"depths"`
		} `json:"layers"`
	} `json:"properties"`
}

// Profile returns the soil profile for the coordinates. Provider
// failures degrade to a deterministic synthetic profile rather than an
// error.
func (s *Service) Profile(ctx context.Context, lat, lon float64) model.SoilData {
	key := coord.Key(lat, lon)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	url := fmt.Sprintf(
		"%s/properties/query?lat=%.4f&lon=%.4f&property=clay&property=sand&property=silt&property=phh2o&property=soc&depth=0-5cm&value=mean",
		s.baseURL, lat, lon,
	)

	var resp gridsResponse
	if err := s.client.GetJSON(ctx, url, &resp); err != nil {
		s.log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).
			Msg("soil provider unavailable, using synthetic profile")
		metrics.FallbacksTotal.WithLabelValues("soilgrids").Inc()
		return FallbackProfile(lat, lon)
	}

	data, ok := buildProfile(resp, lat)
	if !ok {
		metrics.FallbacksTotal.WithLabelValues("soilgrids").Inc()
		return FallbackProfile(lat, lon)
	}
	s.cache.Set(key, data)
	return data
}

func buildProfile(resp gridsResponse, lat float64) (model.SoilData, bool) {
	raw := map[string]float64{}
	for _, layer := range resp.Properties.Layers {
		for _, depth := range layer.Depths {
			if depth.Values.Mean != nil {
				raw[layer.Name] = *depth.Values.Mean
				break
			}
		}
	}
	if len(raw) == 0 {
		return model.SoilData{}, false
	}

	// Provider units: texture g/kg -> %, pH*10 -> pH, soc dg/kg -> %.
	data := model.SoilData{
		ClayContent:   round1(raw["clay"] / 10),
		SandContent:   round1(raw["sand"] / 10),
		SiltContent:   round1(raw["silt"] / 10),
		PHLevel:       round1(raw["phh2o"] / 10),
		OrganicCarbon: round2(raw["soc"] / 100),
	}
	finishProfile(&data, lat)
	return data, true
}

// finishProfile fills the fields derived from composition: the texture
// class and indicative NPK levels.
func finishProfile(d *model.SoilData, lat float64) {
	d.SoilType = classify(d.ClayContent, d.SandContent, d.SiltContent)
	d.Nitrogen = round1(clamp(30+12*d.OrganicCarbon+0.4*d.ClayContent-0.15*math.Abs(lat), 10, 140))
	d.Phosphorus = round1(clamp(12+0.5*d.SiltContent+6*d.OrganicCarbon-2*(d.PHLevel-6.5), 5, 90))
	d.Potassium = round1(clamp(40+1.6*d.ClayContent+8*(d.PHLevel-5.5), 20, 220))
}

// classify maps texture fractions to a coarse soil type.
func classify(clay, sand, silt float64) string {
	switch {
	case clay > 40:
		return "Clay"
	case sand > 70:
		return "Sandy"
	case silt > 40:
		return "Silty"
	case clay > 20 && sand > 40:
		return "Clay Loam"
	case sand > 50 && clay < 20:
		return "Sandy Loam"
	default:
		return "Loam"
	}
}

// FallbackProfile generates a plausible profile seeded by the rounded
// coordinates.
func FallbackProfile(lat, lon float64) model.SoilData {
	rng := rand.New(rand.NewSource(coord.Seed(lat, lon)))

	clay := 15 + rng.Float64()*30  // 15..45
	sand := 20 + rng.Float64()*45  // 20..65
	if clay+sand > 95 {
		sand = 95 - clay
	}
	silt := 100 - clay - sand

	d := model.SoilData{
		ClayContent:   round1(clay),
		SandContent:   round1(sand),
		SiltContent:   round1(silt),
		OrganicCarbon: round2(0.4 + rng.Float64()*1.8),
		PHLevel:       round1(5.5 + rng.Float64()*2.5),
	}
	finishProfile(&d, lat)
	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
