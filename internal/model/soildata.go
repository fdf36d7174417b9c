package model

// SoilData is the composition record from the soil source, plus the
// nutrient levels derived from composition, pH and latitude.
type SoilData struct {
	ClayContent   float64 `json:"clay_content"` // %
	SandContent   float64 `json:"sand_content"` // %
	SiltContent   float64 `json:"silt_content"` // %
	OrganicCarbon float64 `json:"organic_carbon"`
	PHLevel       float64 `json:"ph_level"`
	SoilType      string  `json:"soil_type"`

	// Derived nutrient estimates, kg/ha.
	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
}
