// Package recorder writes request observations to InfluxDB for usage
// analytics. Recording is optional telemetry: a nil *Recorder is valid
// and drops everything, so handlers never branch on whether Influx is
// configured.
package recorder

import (
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// Config describes the InfluxDB connection.
type Config struct {
	URL    string `koanf:"url"`
	Token  string `koanf:"token"`
	Org    string `koanf:"org"`
	Bucket string `koanf:"bucket"`
}

// Recorder wraps the async write API and tracks the last write error so
// health checks can report Influx trouble.
type Recorder struct {
	client  influxdb2.Client
	api     api.WriteAPI
	mu      sync.RWMutex
	lastErr time.Time
	log     zerolog.Logger
}

// New connects the recorder and starts the async error listener.
func New(cfg Config, log zerolog.Logger) *Recorder {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	r := &Recorder{
		client:  client,
		api:     client.WriteAPI(cfg.Org, cfg.Bucket),
		lastErr: time.Now().Add(-24 * time.Hour),
		log:     log,
	}
	go func() {
		for err := range r.api.Errors() {
			if err != nil {
				r.mu.Lock()
				r.lastErr = time.Now()
				r.mu.Unlock()
				log.Error().Err(err).Msg("influx write error")
			}
		}
	}()
	return r
}

// RecordWeatherObservation stores one forecast day as a weather point.
func (r *Recorder) RecordWeatherObservation(lat, lon float64, day model.WeatherDay) {
	if r == nil {
		return
	}
	r.api.WritePoint(weatherPoint(lat, lon, day, time.Now()))
}

// RecordSoilReading stores the soil parameters seen in a request.
func (r *Recorder) RecordSoilReading(lat, lon float64, soil model.SoilParameters) {
	if r == nil {
		return
	}
	r.api.WritePoint(soilPoint(lat, lon, soil, time.Now()))
}

// RecordAdvisory stores one advisory observation point.
func (r *Recorder) RecordAdvisory(lat, lon float64, alert string) {
	if r == nil {
		return
	}
	r.api.WritePoint(advisoryPoint(lat, lon, alert, time.Now()))
}

func weatherPoint(lat, lon float64, day model.WeatherDay, ts time.Time) *write.Point {
	return influxdb2.NewPointWithMeasurement("weather").
		AddTag("condition", day.Condition).
		AddField("lat", lat).
		AddField("lon", lon).
		AddField("temperature_max", day.TemperatureMax).
		AddField("temperature_min", day.TemperatureMin).
		AddField("rainfall", day.Rainfall).
		AddField("humidity", day.Humidity).
		SetTime(ts)
}

func soilPoint(lat, lon float64, soil model.SoilParameters, ts time.Time) *write.Point {
	return influxdb2.NewPointWithMeasurement("soil").
		AddField("lat", lat).
		AddField("lon", lon).
		AddField("nitrogen", soil.Nitrogen).
		AddField("phosphorus", soil.Phosphorus).
		AddField("potassium", soil.Potassium).
		AddField("ph", soil.PH).
		AddField("rainfall", soil.Rainfall).
		SetTime(ts)
}

func advisoryPoint(lat, lon float64, alert string, ts time.Time) *write.Point {
	return influxdb2.NewPointWithMeasurement("advisory").
		AddTag("has_alert", boolTag(alert != "")).
		AddField("lat", lat).
		AddField("lon", lon).
		AddField("alert", alert).
		SetTime(ts)
}

// LastErrorAge reports how long writes have been error-free. A nil
// recorder reports a very large age.
func (r *Recorder) LastErrorAge() time.Duration {
	if r == nil {
		return 99999 * time.Hour
	}
	r.mu.RLock()
	t := r.lastErr
	r.mu.RUnlock()
	return time.Since(t)
}

// Close flushes pending points and shuts the client down.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	r.api.Flush()
	r.client.Close()
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
