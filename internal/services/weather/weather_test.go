package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rs-patil/cropadvisor/internal/model"
)

func TestForecastFromProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily":{
			"time":["2026-09-01","2026-09-02","2026-09-03"],
			"temperature_2m_max":[31.0,36.5,8.0],
			"temperature_2m_min":[22.0,25.0,2.0],
			"precipitation_sum":[12.5,0.0,1.0],
			"relative_humidity_2m_mean":[78.0,60.0,55.0],
			"windspeed_10m_max":[14.0,10.0,22.0]
		}}`))
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute, zerolog.Nop(), WithBaseURL(srv.URL))
	days := s.Forecast(context.Background(), 18.52, 73.86)
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}

	wantConditions := []string{"Heavy Rain", "Hot", "Cold"}
	for i, want := range wantConditions {
		if days[i].Condition != want {
			t.Errorf("day %d condition = %q, want %q", i, days[i].Condition, want)
		}
	}
	if days[0].Humidity != 78.0 {
		t.Errorf("day 0 humidity = %g, want 78", days[0].Humidity)
	}
}

func TestForecastHumidityDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{
			"time":["2026-09-01"],
			"temperature_2m_max":[28.0],
			"temperature_2m_min":[20.0],
			"precipitation_sum":[0.0]
		}}`))
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute, zerolog.Nop(), WithBaseURL(srv.URL))
	days := s.Forecast(context.Background(), 10, 10)
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if days[0].Humidity != defaultHumidity {
		t.Errorf("humidity = %g, want default %g", days[0].Humidity, defaultHumidity)
	}
	if days[0].Condition != "Clear" {
		t.Errorf("condition = %q, want Clear", days[0].Condition)
	}
}

func TestForecastCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"daily":{
			"time":["2026-09-01"],
			"temperature_2m_max":[25.0],
			"temperature_2m_min":[18.0],
			"precipitation_sum":[0.0]
		}}`))
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute, zerolog.Nop(), WithBaseURL(srv.URL))
	s.Forecast(context.Background(), 18.52, 73.86)
	s.Forecast(context.Background(), 18.52, 73.86)
	if calls != 1 {
		t.Errorf("provider called %d times, want 1 (second hit cached)", calls)
	}
}

func TestForecastFallsBackOnProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute, zerolog.Nop(), WithBaseURL(srv.URL))
	days := s.Forecast(context.Background(), 18.52, 73.86)
	if len(days) != ForecastDays {
		t.Fatalf("fallback produced %d days, want %d", len(days), ForecastDays)
	}
	for i, d := range days {
		if d.Condition == "" {
			t.Errorf("day %d missing condition", i)
		}
		if d.TemperatureMin >= d.TemperatureMax {
			t.Errorf("day %d tmin %g >= tmax %g", i, d.TemperatureMin, d.TemperatureMax)
		}
	}
}

func TestFallbackForecastDeterministic(t *testing.T) {
	a := FallbackForecast(18.52, 73.86, 7)
	b := FallbackForecast(18.52, 73.86, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("same coordinates produced different fallback forecasts")
	}

	c := FallbackForecast(28.61, 77.21, 7)
	if reflect.DeepEqual(a, c) {
		t.Error("distinct coordinates produced identical fallback forecasts")
	}

	// Rounding keeps nearby coordinates on the same forecast.
	d := FallbackForecast(18.521, 73.859, 7)
	if !reflect.DeepEqual(a, d) {
		t.Error("coordinates within rounding distance diverged")
	}
}

func TestDeriveCondition(t *testing.T) {
	tests := []struct {
		name string
		day  model.WeatherDay
		want string
	}{
		{"heavy rain wins over heat", model.WeatherDay{Rainfall: 15, TemperatureMax: 40}, "Heavy Rain"},
		{"light rain", model.WeatherDay{Rainfall: 3, TemperatureMax: 25, TemperatureMin: 18}, "Light Rain"},
		{"hot", model.WeatherDay{Rainfall: 0, TemperatureMax: 36, TemperatureMin: 24}, "Hot"},
		{"cold", model.WeatherDay{Rainfall: 0, TemperatureMax: 8, TemperatureMin: 2}, "Cold"},
		{"cool day keys on the high", model.WeatherDay{Rainfall: 0, TemperatureMax: 18, TemperatureMin: 5}, "Clear"},
		{"clear", model.WeatherDay{Rainfall: 1, TemperatureMax: 28, TemperatureMin: 16}, "Clear"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveCondition(tt.day); got != tt.want {
				t.Errorf("deriveCondition = %q, want %q", got, tt.want)
			}
		})
	}
}
