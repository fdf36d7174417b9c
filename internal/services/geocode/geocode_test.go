package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestReverseFromProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"display_name": "Pune, Maharashtra, India",
			"address": {
				"city": "Pune",
				"state": "Maharashtra",
				"country": "India",
				"postcode": "411001",
				"state_district": "Pune District"
			}
		}`))
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute, zerolog.Nop(), WithBaseURL(srv.URL))
	got := s.Reverse(context.Background(), 18.52, 73.86)

	if got.City != "Pune" || got.State != "Maharashtra" || got.Country != "India" {
		t.Errorf("got %+v", got)
	}
	if got.District != "Pune District" {
		t.Errorf("district = %q, want Pune District", got.District)
	}
}

func TestReverseFillsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address": {"village": "Khed", "country": "India", "county": "Ratnagiri"}}`))
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute, zerolog.Nop(), WithBaseURL(srv.URL))
	got := s.Reverse(context.Background(), 17.72, 73.40)

	if got.City != "Khed" {
		t.Errorf("city = %q, want village fallback Khed", got.City)
	}
	if got.District != "Ratnagiri" {
		t.Errorf("district = %q, want county fallback Ratnagiri", got.District)
	}
	if got.State != "Unknown" || got.Postcode != "Unknown" {
		t.Errorf("missing fields not defaulted: %+v", got)
	}
	if got.DisplayName != "Location 17.72, 73.40" {
		t.Errorf("display name = %q", got.DisplayName)
	}
}

func TestReversePlaceholderOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := New(time.Second, time.Minute, zerolog.Nop(), WithBaseURL(srv.URL))
	got := s.Reverse(context.Background(), 18.52, 73.86)

	if got != Placeholder(18.52, 73.86) {
		t.Errorf("got %+v, want placeholder", got)
	}
	if got.DisplayName != "Location 18.52, 73.86" {
		t.Errorf("display name = %q", got.DisplayName)
	}
}
