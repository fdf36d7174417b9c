package model

// SuitabilityScore pairs a crop label with the classifier probability that
// it suits the given soil and climate.
type SuitabilityScore struct {
	Crop        string  `json:"crop"`
	Probability float64 `json:"probability"`
}

// Recommendation status values.
const (
	StatusRecommended = "Recommended"
	StatusOverBudget  = "Over Budget"
)

// Recommendation is one ranked entry of the economic ranking engine.
// EstimatedProfit is nil when the crop is over budget: the profit is then
// reported as unavailable rather than zero. ProfitMargin is 0 whenever the
// status is not Recommended.
type Recommendation struct {
	Crop             string    `json:"crop"`
	AgronomicScore   float64   `json:"agronomic_score"` // percent, 0..100
	EstimatedCost    float64   `json:"estimated_cost"`
	EstimatedProfit  *float64  `json:"estimated_profit"`
	ProfitMargin     float64   `json:"profit_margin"`
	Status           string    `json:"status"`
	OverBudgetBy     float64   `json:"over_budget_by,omitempty"`
	GrowingSeason    Season    `json:"growing_season"`
	WaterRequirement WaterNeed `json:"water_requirement"`
}

// Recommended reports whether the entry passed the budget filter.
func (r Recommendation) Recommended() bool { return r.Status == StatusRecommended }
