package model

// OptimalRange is the agronomically ideal interval for a soil parameter.
type OptimalRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// Contains reports whether v lies inside the range (inclusive).
func (r OptimalRange) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// TreatmentDirective is emitted for a parameter outside its optimal range.
type TreatmentDirective struct {
	Parameter                string       `json:"parameter"`
	CurrentValue             float64      `json:"current_value"`
	OptimalRange             OptimalRange `json:"optimal_range"`
	TreatmentSuggestion      string       `json:"treatment_suggestion"`
	FertilizerRecommendation string       `json:"fertilizer_recommendation"`
}
