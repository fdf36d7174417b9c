package gateway

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rs-patil/cropadvisor/internal/engine"
	"github.com/rs-patil/cropadvisor/internal/metrics"
	"github.com/rs-patil/cropadvisor/internal/model"
	"github.com/rs-patil/cropadvisor/internal/services/weather"
)

const serviceName = "cropadvisor"

func (g *Gateway) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"message": "Crop recommendation and advisory API",
		"endpoints": []string{
			"POST /api/recommend",
			"GET /api/weather/{lat}/{lon}",
			"GET /api/soil/{lat}/{lon}",
			"GET /api/location/{lat}/{lon}",
			"GET /api/soil-weather-data/{lat}/{lon}",
			"GET /api/market-trends",
			"POST /api/soil-treatment",
			"GET /api/rotation-plan/{crop}",
			"GET /api/crops",
			"POST /api/analyze-crop",
			"POST /api/analyze-crop-detailed",
		},
	})
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// recommendRequest is the comprehensive recommendation input. Latitude
// and longitude locate the farm; budget is per hectare.
type recommendRequest struct {
	SoilParams model.SoilParameters `json:"soil_params"`
	Latitude   float64              `json:"latitude"`
	Longitude  float64              `json:"longitude"`
	Budget     float64              `json:"budget"`
	FarmSize   float64              `json:"farm_size"`
}

type recommendResponse struct {
	RequestID       string                     `json:"request_id"`
	Location        model.LocationInfo         `json:"location"`
	SoilData        model.SoilData             `json:"soil_data"`
	WeatherForecast []model.WeatherDay         `json:"weather_forecast"`
	Recommendations []model.Recommendation     `json:"recommendations"`
	Treatments      []model.TreatmentDirective `json:"treatments"`
	RotationPlan    []model.RotationStep       `json:"rotation_plan"`
	Advisory        model.Advisory             `json:"advisory"`
	MarketAnalysis  []model.MarketAnalysis     `json:"market_analysis"`
	GeneratedAt     string                     `json:"generated_at"`
}

func (g *Gateway) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}
	if err := validateCoords(req.Latitude, req.Longitude); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}
	if req.Budget < 0 {
		writeError(w, http.StatusBadRequest, "budget must not be negative")
		return
	}

	ctx := r.Context()

	// Fan out to the three location-keyed providers; each owns its own
	// fallback, so the channels always deliver.
	forecastCh := make(chan []model.WeatherDay, 1)
	soilCh := make(chan model.SoilData, 1)
	locationCh := make(chan model.LocationInfo, 1)
	go func() { forecastCh <- g.weather.Forecast(ctx, req.Latitude, req.Longitude) }()
	go func() { soilCh <- g.soil.Profile(ctx, req.Latitude, req.Longitude) }()
	go func() { locationCh <- g.geocode.Reverse(ctx, req.Latitude, req.Longitude) }()

	candidates, err := g.candidates(req.SoilParams)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		g.log.Error().Err(err).Msg("classifier prediction failed")
		if errors.Is(err, engine.ErrInvalidDistribution) {
			writeError(w, http.StatusInternalServerError, "classifier output malformed")
			return
		}
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}
	metrics.PredictionsTotal.WithLabelValues("ok").Inc()

	recommendations := g.store.Rank(candidates, req.Budget)
	treatments := engine.AnalyzeSoilTreatment(req.SoilParams.Parameters())

	topCrop := "rice"
	if len(recommendations) > 0 {
		topCrop = recommendations[0].Crop
	}
	rotation := g.store.RotationPlan(topCrop)

	forecast := <-forecastCh
	soilData := <-soilCh
	location := <-locationCh

	advisory := engine.GenerateAdvisory(forecast, req.SoilParams)

	cropNames := make([]string, 0, len(candidates))
	for _, c := range candidates {
		cropNames = append(cropNames, c.Crop)
	}
	market := g.market.AnalyzeAll(cropNames)

	if advisory.WeatherAlert != "" {
		if err := g.bus.Publish("weather_alert", map[string]any{
			"latitude":  req.Latitude,
			"longitude": req.Longitude,
			"alert":     advisory.WeatherAlert,
		}); err != nil {
			g.log.Warn().Err(err).Msg("advisory alert publish failed")
		}
	}
	// Observations only: what the field looked like, never what was
	// recommended for it.
	if len(forecast) > 0 {
		g.recorder.RecordWeatherObservation(req.Latitude, req.Longitude, forecast[0])
	}
	g.recorder.RecordSoilReading(req.Latitude, req.Longitude, req.SoilParams)
	g.recorder.RecordAdvisory(req.Latitude, req.Longitude, advisory.WeatherAlert)

	writeJSON(w, http.StatusOK, recommendResponse{
		RequestID:       middleware.GetReqID(ctx),
		Location:        location,
		SoilData:        soilData,
		WeatherForecast: forecast,
		Recommendations: recommendations,
		Treatments:      treatments,
		RotationPlan:    rotation,
		Advisory:        advisory,
		MarketAnalysis:  market,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (g *Gateway) handleWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordsFromURL(w, r)
	if !ok {
		return
	}

	days := weather.ForecastDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	forecast := g.weather.Forecast(r.Context(), lat, lon)
	if days < len(forecast) {
		forecast = forecast[:days]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"latitude":  lat,
		"longitude": lon,
		"forecast":  forecast,
	})
}

func (g *Gateway) handleSoil(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordsFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"latitude":  lat,
		"longitude": lon,
		"soil_data": g.soil.Profile(r.Context(), lat, lon),
	})
}

func (g *Gateway) handleLocation(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordsFromURL(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.geocode.Reverse(r.Context(), lat, lon))
}

// soilWeatherForm is the auto-fill payload for the recommendation form:
// derived soil nutrients plus a single day of weather, flattened to the
// form's field names.
type soilWeatherForm struct {
	Nitrogen    float64            `json:"nitrogen"`
	Phosphorus  float64            `json:"phosphorus"`
	Potassium   float64            `json:"potassium"`
	PH          float64            `json:"ph"`
	PHLevel     float64            `json:"ph_level"`
	Rainfall    float64            `json:"rainfall"`
	Temperature float64            `json:"temperature"`
	Humidity    float64            `json:"humidity"`
	Location    model.LocationInfo `json:"location_info"`
	SoilDetails soilDetails        `json:"soil_details"`
}

type soilDetails struct {
	ClayContent   float64 `json:"clay_content"`
	SandContent   float64 `json:"sand_content"`
	SiltContent   float64 `json:"silt_content"`
	OrganicCarbon float64 `json:"organic_carbon"`
	SoilType      string  `json:"soil_type"`
}

func (g *Gateway) handleSoilWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coordsFromURL(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	forecastCh := make(chan []model.WeatherDay, 1)
	soilCh := make(chan model.SoilData, 1)
	locationCh := make(chan model.LocationInfo, 1)
	go func() { forecastCh <- g.weather.Forecast(ctx, lat, lon) }()
	go func() { soilCh <- g.soil.Profile(ctx, lat, lon) }()
	go func() { locationCh <- g.geocode.Reverse(ctx, lat, lon) }()

	forecast := <-forecastCh
	soil := <-soilCh
	location := <-locationCh

	form := soilWeatherForm{
		Nitrogen:   soil.Nitrogen,
		Phosphorus: soil.Phosphorus,
		Potassium:  soil.Potassium,
		PH:         soil.PHLevel,
		PHLevel:    soil.PHLevel,
		// Fallback form values when no forecast day is available.
		Rainfall:    100.0,
		Temperature: 25.0,
		Humidity:    70.0,
		Location:    location,
		SoilDetails: soilDetails{
			ClayContent:   soil.ClayContent,
			SandContent:   soil.SandContent,
			SiltContent:   soil.SiltContent,
			OrganicCarbon: soil.OrganicCarbon,
			SoilType:      soil.SoilType,
		},
	}
	if len(forecast) > 0 {
		today := forecast[0]
		form.Rainfall = today.Rainfall
		form.Temperature = math.Round((today.TemperatureMax+today.TemperatureMin)/2*10) / 10
		form.Humidity = today.Humidity
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    form,
	})
}

func (g *Gateway) handleMarketTrends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, g.market.Trends())
}

// soilTreatmentRequest carries a sparse parameter set: absent parameters
// are skipped, not zero-filled.
type soilTreatmentRequest struct {
	SoilParams map[string]float64 `json:"soil_params"`
}

func (g *Gateway) handleSoilTreatment(w http.ResponseWriter, r *http.Request) {
	var req soilTreatmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}
	if len(req.SoilParams) == 0 {
		writeError(w, http.StatusBadRequest, "soil_params must not be empty")
		return
	}

	params := model.OrderedParameters(req.SoilParams)
	treatments := engine.AnalyzeSoilTreatment(params)
	writeJSON(w, http.StatusOK, map[string]any{
		"treatments": treatments,
		"count":      len(treatments),
	})
}

func (g *Gateway) handleRotationPlan(w http.ResponseWriter, r *http.Request) {
	crop := chi.URLParam(r, "crop")
	plan := g.store.RotationPlan(crop)
	if len(plan) == 0 {
		writeError(w, http.StatusNotFound, "%s: %q", engine.ErrUnknownCrop, crop)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"crop":          crop,
		"rotation_plan": plan,
	})
}

func (g *Gateway) handleCrops(w http.ResponseWriter, r *http.Request) {
	crops := g.store.Crops()
	writeJSON(w, http.StatusOK, map[string]any{
		"crops": crops,
		"count": len(crops),
	})
}

type analyzeCropRequest struct {
	Crop       string               `json:"crop"`
	SoilParams model.SoilParameters `json:"soil_params"`
	FarmSize   float64              `json:"farm_size"`
}

func (g *Gateway) handleAnalyzeCrop(w http.ResponseWriter, r *http.Request) {
	req, candidates, ok := g.decodeAnalyze(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.store.AnalyzeCrop(candidates, req.Crop, req.SoilParams))
}

func (g *Gateway) handleAnalyzeCropDetailed(w http.ResponseWriter, r *http.Request) {
	req, candidates, ok := g.decodeAnalyze(w, r)
	if !ok {
		return
	}
	farm := req.FarmSize
	if farm <= 0 {
		farm = g.defaultFarm
	}
	writeJSON(w, http.StatusOK, g.store.AnalyzeCropDetailed(candidates, req.Crop, req.SoilParams, farm))
}

// decodeAnalyze parses an analysis request and runs the classifier. A
// classifier failure degrades to threshold-only scoring with no
// candidates rather than an error.
func (g *Gateway) decodeAnalyze(w http.ResponseWriter, r *http.Request) (analyzeCropRequest, []model.SuitabilityScore, bool) {
	var req analyzeCropRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return req, nil, false
	}
	if req.Crop == "" {
		writeError(w, http.StatusBadRequest, "crop is required")
		return req, nil, false
	}

	candidates, err := g.candidates(req.SoilParams)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		g.log.Warn().Err(err).Msg("classifier unavailable, falling back to threshold scoring")
		candidates = nil
	} else {
		metrics.PredictionsTotal.WithLabelValues("ok").Inc()
	}
	return req, candidates, true
}

func coordsFromURL(w http.ResponseWriter, r *http.Request) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(chi.URLParam(r, "lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid latitude %q", chi.URLParam(r, "lat"))
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(chi.URLParam(r, "lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid longitude %q", chi.URLParam(r, "lon"))
		return 0, 0, false
	}
	if err := validateCoords(lat, lon); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return 0, 0, false
	}
	return lat, lon, true
}

func validateCoords(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return errLatitude
	}
	if lon < -180 || lon > 180 {
		return errLongitude
	}
	return nil
}

var (
	errLatitude  = errors.New("latitude must be between -90 and 90")
	errLongitude = errors.New("longitude must be between -180 and 180")
)
