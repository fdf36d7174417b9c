package model

// Parameter status labels used by the detailed crop analysis.
const (
	StatusOptimal  = "optimal"
	StatusLow      = "low"
	StatusHigh     = "high"
	StatusAcidic   = "acidic"
	StatusAlkaline = "alkaline"
)

// Improvement priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
)

// ParameterAssessment classifies one soil parameter against its optimal
// range. Recommendation is empty when the parameter is optimal.
type ParameterAssessment struct {
	Parameter      string  `json:"parameter"`
	Current        float64 `json:"current"`
	OptimalRange   string  `json:"optimal_range"`
	Status         string  `json:"status"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// BasicAssessment is the coarse per-parameter verdict on the quick
// analysis path. Values are preformatted strings with units.
type BasicAssessment struct {
	Current string `json:"current"`
	Optimal string `json:"optimal"`
	Range   string `json:"range"`
	Status  string `json:"status"`
}

// CropAnalysis is the basic suitability verdict for a chosen crop.
type CropAnalysis struct {
	Crop             string                     `json:"crop"`
	SuitabilityScore float64                    `json:"suitability_score"`
	IsSuitable       bool                       `json:"is_suitable"`
	NeedsTreatment   bool                       `json:"needs_treatment"`
	Parameters       map[string]BasicAssessment `json:"parameter_analysis,omitempty"`
}

// Improvement is one entry of the improvement plan.
type Improvement struct {
	Parameter string `json:"parameter"`
	Issue     string `json:"issue"`
	Solution  string `json:"solution"`
	Priority  string `json:"priority"`
}

// ImprovementPlan aggregates the non-optimal parameters. When nothing
// needs adjusting, Improvements is empty and Message explains why.
type ImprovementPlan struct {
	Improvements []Improvement `json:"improvements,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Message      string        `json:"message,omitempty"`
}

// CostItem is one line of the cost breakdown.
type CostItem struct {
	Item string  `json:"item"`
	Cost float64 `json:"cost"`
}

// CostPlan is the structured cultivation cost estimate for a chosen crop
// on a farm of the given size.
type CostPlan struct {
	Breakdown      []CostItem `json:"breakdown"`
	TotalCost      float64    `json:"total_cost"`
	FarmSize       float64    `json:"farm_size_hectares"`
	CostPerHectare float64    `json:"cost_per_hectare"`
	Message        string     `json:"message,omitempty"`
}

// DetailedAnalysis bundles the full analyze-crop response. Its Parameters
// field supersedes the embedded coarse parameter_analysis map in the
// encoded output.
type DetailedAnalysis struct {
	CropAnalysis
	Parameters      []ParameterAssessment `json:"parameter_analysis"`
	ImprovementPlan ImprovementPlan       `json:"improvement_plan"`
	CostPlan        CostPlan              `json:"cost_analysis"`
}
