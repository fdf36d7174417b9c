package engine

import (
	"fmt"
	"strings"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// unconstrainedBudget makes the budget filter pass for every crop so the
// suitability lookup is never excluded by status.
const unconstrainedBudget = 1e12

// suitabilityThreshold is the minimum score for a crop to count suitable.
const suitabilityThreshold = 60.0

// AnalyzeCrop scores how well a chosen crop fits the given soil. When the
// crop appears among the classifier candidates its probability drives the
// score; otherwise the score degrades to the unweighted mean of bucketed
// per-parameter sub-scores.
func (s *Store) AnalyzeCrop(candidates []model.SuitabilityScore, crop string, soil model.SoilParameters) model.CropAnalysis {
	score, found := 0.0, false
	for _, rec := range s.Rank(candidates, unconstrainedBudget) {
		if strings.EqualFold(rec.Crop, crop) {
			score = rec.AgronomicScore
			found = true
			break
		}
	}
	if !found {
		score = thresholdScore(soil)
	}

	return model.CropAnalysis{
		Crop:             crop,
		SuitabilityScore: score,
		IsSuitable:       score >= suitabilityThreshold,
		NeedsTreatment:   score < suitabilityThreshold,
		Parameters:       basicParameterAnalysis(soil),
	}
}

// basicParameterAnalysis is the coarse verdict on the quick path: flat
// ranges for the three nutrients, pH and temperature. Note the wider
// temperature band than the detailed assessment uses.
func basicParameterAnalysis(soil model.SoilParameters) map[string]model.BasicAssessment {
	nutrient := func(v float64) model.BasicAssessment {
		status := model.StatusOptimal
		switch {
		case v < 40:
			status = model.StatusLow
		case v > 80:
			status = model.StatusHigh
		}
		return model.BasicAssessment{
			Current: fmt.Sprintf("%g kg/ha", v),
			Optimal: "40-80 kg/ha",
			Range:   "40-80 kg/ha",
			Status:  status,
		}
	}

	phStatus := model.StatusOptimal
	switch {
	case soil.PH < 6.0:
		phStatus = model.StatusAcidic
	case soil.PH > 7.5:
		phStatus = model.StatusAlkaline
	}

	tempStatus := model.StatusOptimal
	switch {
	case soil.Temperature < 20:
		tempStatus = model.StatusLow
	case soil.Temperature > 35:
		tempStatus = model.StatusHigh
	}

	return map[string]model.BasicAssessment{
		model.ParamNitrogen:   nutrient(soil.Nitrogen),
		model.ParamPhosphorus: nutrient(soil.Phosphorus),
		model.ParamPotassium:  nutrient(soil.Potassium),
		model.ParamPH: {
			Current: fmt.Sprintf("%g pH", soil.PH),
			Optimal: "6.0-7.5 pH",
			Range:   "6.0-7.5 pH",
			Status:  phStatus,
		},
		model.ParamTemperature: {
			Current: fmt.Sprintf("%g°C", soil.Temperature),
			Optimal: "20-35°C",
			Range:   "20-35°C",
			Status:  tempStatus,
		},
	}
}

// thresholdScore is the fallback scoring path: five sub-scores bucketed by
// parameter-specific thresholds, averaged without weights.
func thresholdScore(soil model.SoilParameters) float64 {
	bucket := func(v, tightLo, tightHi, looseLo, looseHi, tight, loose, out float64) float64 {
		switch {
		case v >= tightLo && v <= tightHi:
			return tight
		case v >= looseLo && v <= looseHi:
			return loose
		default:
			return out
		}
	}

	scores := []float64{
		bucket(soil.Nitrogen, 40, 80, 30, 90, 90, 75, 50),
		bucket(soil.Phosphorus, 30, 60, 20, 70, 90, 75, 50),
		bucket(soil.Potassium, 40, 80, 30, 90, 90, 75, 50),
		bucket(soil.PH, 6.0, 7.5, 5.5, 8.0, 95, 80, 60),
		bucket(soil.Temperature, 20, 30, 15, 35, 90, 75, 60),
	}

	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores))
}

// assessmentRange describes a detailed-mode optimal range and how values
// outside it are labeled and remediated.
type assessmentRange struct {
	min, max  float64
	unit      string
	lowLabel  string
	highLabel string
	lowText   func(v float64) string
	highText  func(v float64) string
}

var assessmentRanges = map[string]assessmentRange{
	model.ParamNitrogen: {40, 80, "kg/ha", model.StatusLow, model.StatusHigh,
		func(v float64) string { return fmt.Sprintf("Apply nitrogen fertilizer to increase N levels by %g kg/ha", 40-v) },
		func(v float64) string { return fmt.Sprintf("Reduce nitrogen input by %g kg/ha to avoid leaching", v-80) },
	},
	model.ParamPhosphorus: {30, 60, "kg/ha", model.StatusLow, model.StatusHigh,
		func(v float64) string { return fmt.Sprintf("Apply phosphatic fertilizer to increase P levels by %g kg/ha", 30-v) },
		func(v float64) string { return fmt.Sprintf("Reduce phosphorus input by %g kg/ha", v-60) },
	},
	model.ParamPotassium: {40, 80, "kg/ha", model.StatusLow, model.StatusHigh,
		func(v float64) string { return fmt.Sprintf("Apply potash fertilizer to increase K levels by %g kg/ha", 40-v) },
		func(v float64) string { return fmt.Sprintf("Reduce potassium input by %g kg/ha", v-80) },
	},
	model.ParamPH: {6.0, 7.5, "", model.StatusAcidic, model.StatusAlkaline,
		func(v float64) string { return fmt.Sprintf("Apply lime to increase pH by %.1f units", 6.0-v) },
		func(v float64) string { return fmt.Sprintf("Apply sulfur to decrease pH by %.1f units", v-7.5) },
	},
	model.ParamTemperature: {20, 30, "°C", model.StatusLow, model.StatusHigh,
		func(float64) string { return "Consider greenhouse cultivation or seasonal timing adjustment" },
		func(float64) string { return "Provide shade or cooling systems during hot periods" },
	},
	model.ParamHumidity: {50, 80, "%", model.StatusLow, model.StatusHigh,
		func(float64) string { return "Increase irrigation frequency to maintain soil moisture" },
		func(float64) string { return "Improve drainage and air circulation to reduce humidity" },
	},
	model.ParamRainfall: {50, 200, "mm", model.StatusLow, model.StatusHigh,
		func(float64) string { return "Install irrigation system to supplement rainfall" },
		func(float64) string { return "Ensure proper drainage to prevent waterlogging" },
	},
}

// AssessParameters classifies each present parameter against its detailed
// optimal range. Output order follows input order.
func AssessParameters(params []model.Parameter) []model.ParameterAssessment {
	var out []model.ParameterAssessment
	for _, p := range params {
		r, known := assessmentRanges[p.Name]
		if !known {
			continue
		}
		a := model.ParameterAssessment{
			Parameter:    p.Name,
			Current:      p.Value,
			OptimalRange: formatRange(r),
			Status:       model.StatusOptimal,
		}
		switch {
		case p.Value < r.min:
			a.Status = r.lowLabel
			a.Recommendation = r.lowText(p.Value)
		case p.Value > r.max:
			a.Status = r.highLabel
			a.Recommendation = r.highText(p.Value)
		}
		out = append(out, a)
	}
	return out
}

func formatRange(r assessmentRange) string {
	if r.unit == "" {
		return fmt.Sprintf("%g-%g", r.min, r.max)
	}
	return fmt.Sprintf("%g-%g %s", r.min, r.max, r.unit)
}

// BuildImprovementPlan aggregates non-optimal assessments. Hard low/high
// deviations are High priority; acidic/alkaline are Medium.
func BuildImprovementPlan(crop string, assessments []model.ParameterAssessment) model.ImprovementPlan {
	var improvements []model.Improvement
	for _, a := range assessments {
		if a.Status == model.StatusOptimal || a.Recommendation == "" {
			continue
		}
		priority := model.PriorityMedium
		if a.Status == model.StatusLow || a.Status == model.StatusHigh {
			priority = model.PriorityHigh
		}
		improvements = append(improvements, model.Improvement{
			Parameter: strings.ToUpper(a.Parameter),
			Issue:     fmt.Sprintf("Current level: %g (status: %s)", a.Current, a.Status),
			Solution:  a.Recommendation,
			Priority:  priority,
		})
	}

	if len(improvements) == 0 {
		return model.ImprovementPlan{
			Message: fmt.Sprintf("Excellent! Your soil conditions are already optimal for %s cultivation.", crop),
		}
	}
	return model.ImprovementPlan{
		Improvements: improvements,
		Summary:      fmt.Sprintf("Found %d parameters that need adjustment for optimal %s cultivation.", len(improvements), crop),
	}
}

// Remediation and base costs per hectare.
const (
	nutrientFixCost = 8000
	phFixCost       = 4000
)

// BuildCostPlan derives the cultivation cost estimate. With improvements
// pending, each nutrient or pH fix adds a remediation line item scaled by
// farm size, on top of fixed base costs; with optimal soil a reduced
// maintenance cost set applies instead.
func BuildCostPlan(crop string, plan model.ImprovementPlan, farmSize float64) model.CostPlan {
	var breakdown []model.CostItem

	if len(plan.Improvements) > 0 {
		for _, imp := range plan.Improvements {
			switch strings.ToUpper(imp.Parameter) {
			case model.ParamNitrogen, model.ParamPhosphorus, model.ParamPotassium:
				breakdown = append(breakdown, model.CostItem{
					Item: fmt.Sprintf("%s Fertilizer", imp.Parameter),
					Cost: nutrientFixCost * farmSize,
				})
			case "PH":
				breakdown = append(breakdown, model.CostItem{
					Item: "pH Correction (Lime/Sulfur)",
					Cost: phFixCost * farmSize,
				})
			}
			// Climate deviations (temperature, humidity, rainfall) have no
			// remediation line item.
		}
		breakdown = append(breakdown,
			model.CostItem{Item: "Seeds", Cost: 3000 * farmSize},
			model.CostItem{Item: "Labor", Cost: 5000 * farmSize},
			model.CostItem{Item: "Equipment/Tools", Cost: 2000 * farmSize},
		)
	} else {
		breakdown = append(breakdown,
			model.CostItem{Item: "Seeds", Cost: 3000 * farmSize},
			model.CostItem{Item: "Maintenance Fertilizer", Cost: 4000 * farmSize},
			model.CostItem{Item: "Labor", Cost: 4000 * farmSize},
			model.CostItem{Item: "Equipment/Tools", Cost: 1500 * farmSize},
		)
	}

	total := 0.0
	for _, item := range breakdown {
		total += item.Cost
	}
	perHectare := 0.0
	if farmSize > 0 {
		perHectare = total / farmSize
	}

	cp := model.CostPlan{
		Breakdown:      breakdown,
		TotalCost:      total,
		FarmSize:       farmSize,
		CostPerHectare: perHectare,
	}
	if len(plan.Improvements) == 0 {
		cp.Message = fmt.Sprintf("Minimal investment required - your soil is already optimal for %s!", crop)
	}
	return cp
}

// AnalyzeCropDetailed runs the full analysis: suitability score,
// per-parameter assessment, improvement plan and cost plan.
func (s *Store) AnalyzeCropDetailed(candidates []model.SuitabilityScore, crop string, soil model.SoilParameters, farmSize float64) model.DetailedAnalysis {
	basic := s.AnalyzeCrop(candidates, crop, soil)
	assessments := AssessParameters(soil.Parameters())
	plan := BuildImprovementPlan(crop, assessments)
	return model.DetailedAnalysis{
		CropAnalysis:    basic,
		Parameters:      assessments,
		ImprovementPlan: plan,
		CostPlan:        BuildCostPlan(crop, plan, farmSize),
	}
}
