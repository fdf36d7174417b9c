package model

// Advisory fuses aggregated forecast statistics and soil data into
// categorical guidance. Alert and pest fields are empty when no rule fires.
type Advisory struct {
	WeatherAlert           string `json:"weather_alert,omitempty"`
	PlantingRecommendation string `json:"planting_recommendation"`
	IrrigationAdvice       string `json:"irrigation_advice"`
	PestWarning            string `json:"pest_warning,omitempty"`
	HarvestTiming          string `json:"harvest_timing"`
}
