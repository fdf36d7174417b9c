package model

// WeatherDay is one day of forecast as delivered by the weather source
// (or its deterministic fallback). Date is an ISO calendar date.
type WeatherDay struct {
	Date           string  `json:"date"`
	TemperatureMax float64 `json:"temperature_max"`
	TemperatureMin float64 `json:"temperature_min"`
	Rainfall       float64 `json:"rainfall"` // mm
	Humidity       float64 `json:"humidity"` // %
	WindSpeed      float64 `json:"wind_speed"`
	Condition      string  `json:"weather_condition"`
}
