// Package weather serves daily forecasts from Open-Meteo, with a
// deterministic synthetic fallback when the provider is unreachable.
package weather

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

const (
	defaultBaseURL  = "https://api.open-meteo.com/v1"
	defaultHumidity = 70.0
	// ForecastDays is the horizon requested from the provider.
	ForecastDays = 7
)

// Service fetches and caches forecasts.
type Service struct {
	baseURL string
	client  *upstream.Client
	cache   *ttlcache.Cache[[]model.WeatherDay]
	log     zerolog.Logger
}

// Option tweaks Service construction.
type Option func(*Service)

// WithBaseURL overrides the provider endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(s *Service) { s.baseURL = u }
}

// New builds the weather service. Responses are cached for cacheTTL
// keyed by rounded coordinates.
func New(timeout, cacheTTL time.Duration, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		baseURL: defaultBaseURL,
		client:  upstream.New("open-meteo", timeout, 30*time.Second, log),
		cache:   ttlcache.New[[]model.WeatherDay](cacheTTL, 1000),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// forecastResponse mirrors the provider's daily block. Humidity may be
// absent depending on the provider plan.
type forecastResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		HumidityMean     []float64 `json:"relative_humidity_2m_mean"`
		WindSpeedMax     []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Forecast returns a daily forecast for the coordinates. On provider
// failure it degrades to a deterministic synthetic forecast, never an
// error: advisory consumers prefer approximate data over none.
func (s *Service) Forecast(ctx context.Context, lat, lon float64) []model.WeatherDay {
	key := coord.Key(lat, lon)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	url := fmt.Sprintf(
		"%s/forecast?latitude=%.4f&longitude=%.4f&daily=temperature_2m_max,temperature_2m_min,precipitation_sum,relative_humidity_2m_mean,windspeed_10m_max&forecast_days=%d&timezone=auto",
		s.baseURL, lat, lon, ForecastDays,
	)

	var resp forecastResponse
	if err := s.client.GetJSON(ctx, url, &resp); err != nil {
		s.log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).
			Msg("weather provider unavailable, using synthetic forecast")
		metrics.FallbacksTotal.WithLabelValues("open-meteo").Inc()
		return FallbackForecast(lat, lon, ForecastDays)
	}

	days := buildDays(resp)
	if len(days) == 0 {
		metrics.FallbacksTotal.WithLabelValues("open-meteo").Inc()
		return FallbackForecast(lat, lon, ForecastDays)
	}
	s.cache.Set(key, days)
	return days
}

func buildDays(resp forecastResponse) []model.WeatherDay {
	d := resp.Daily
	n := len(d.Time)
	if len(d.TemperatureMax) < n {
		n = len(d.TemperatureMax)
	}
	if len(d.TemperatureMin) < n {
		n = len(d.TemperatureMin)
	}
	if len(d.PrecipitationSum) < n {
		n = len(d.PrecipitationSum)
	}

	days := make([]model.WeatherDay, 0, n)
	for i := 0; i < n; i++ {
		day := model.WeatherDay{
			Date:           d.Time[i],
			TemperatureMax: d.TemperatureMax[i],
			TemperatureMin: d.TemperatureMin[i],
			Rainfall:       d.PrecipitationSum[i],
			Humidity:       defaultHumidity,
		}
		if i < len(d.HumidityMean) {
			day.Humidity = d.HumidityMean[i]
		}
		if i < len(d.WindSpeedMax) {
			day.WindSpeed = d.WindSpeedMax[i]
		}
		day.Condition = deriveCondition(day)
		days = append(days, day)
	}
	return days
}

// deriveCondition summarizes a day. Precipitation dominates temperature.
func deriveCondition(d model.WeatherDay) string {
	switch {
	case d.Rainfall > 10:
		return "Heavy Rain"
	case d.Rainfall > 2:
		return "Light Rain"
	case d.TemperatureMax > 35:
		return "Hot"
	case d.TemperatureMax < 10:
		return "Cold"
	default:
		return "Clear"
	}
}

// FallbackForecast generates a plausible forecast seeded by the rounded
// coordinates, so repeated calls for the same location agree.
func FallbackForecast(lat, lon float64, days int) []model.WeatherDay {
	rng := rand.New(rand.NewSource(coord.Seed(lat, lon)))

	out := make([]model.WeatherDay, 0, days)
	base := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < days; i++ {
		tmax := 22 + rng.Float64()*12 // 22..34
		tmin := tmax - 6 - rng.Float64()*6
		rain := 0.0
		if rng.Float64() < 0.4 {
			rain = rng.Float64() * 15
		}
		day := model.WeatherDay{
			Date:           base.AddDate(0, 0, i).Format("2006-01-02"),
			TemperatureMax: round1(tmax),
			TemperatureMin: round1(tmin),
			Rainfall:       round1(rain),
			Humidity:       round1(55 + rng.Float64()*30),
			WindSpeed:      round1(5 + rng.Float64()*20),
		}
		day.Condition = deriveCondition(day)
		out = append(out, day)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
