package engine

import (
	"strings"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// optimalRanges holds the fixed treatment thresholds per parameter.
// Rainfall has no treatment rule in this pass.
var optimalRanges = map[string]model.OptimalRange{
	model.ParamNitrogen:    {Min: 40, Max: 80, Unit: "kg/ha"},
	model.ParamPhosphorus:  {Min: 30, Max: 60, Unit: "kg/ha"},
	model.ParamPotassium:   {Min: 40, Max: 80, Unit: "kg/ha"},
	model.ParamPH:          {Min: 6.0, Max: 7.5, Unit: "pH"},
	model.ParamHumidity:    {Min: 40, Max: 70, Unit: "%"},
	model.ParamTemperature: {Min: 20, Max: 30, Unit: "°C"},
}

type remedy struct {
	treatment  string
	fertilizer string
}

var lowRemedies = map[string]remedy{
	model.ParamNitrogen:    {"Apply nitrogen-rich fertilizer", "Urea (46-0-0) at 100-150 kg/ha"},
	model.ParamPhosphorus:  {"Apply phosphorus fertilizer", "DAP (18-46-0) at 100-125 kg/ha"},
	model.ParamPotassium:   {"Apply potassium fertilizer", "MOP (0-0-60) at 80-100 kg/ha"},
	model.ParamPH:          {"Apply lime to increase pH", "Agricultural lime at 500-1000 kg/ha"},
	model.ParamHumidity:    {"Increase irrigation frequency to raise field humidity", "Mulch beds to retain soil moisture"},
	model.ParamTemperature: {"Protect crops from low temperature", "Use row covers or polytunnels until temperatures recover"},
}

// High-side remedies exist only for N, P, K and pH; excess humidity and
// temperature produce no directive.
var highRemedies = map[string]remedy{
	model.ParamNitrogen:   {"Reduce nitrogen application", "Skip nitrogen fertilizer this season"},
	model.ParamPhosphorus: {"Reduce phosphorus application", "Use low-P fertilizers"},
	model.ParamPotassium:  {"Reduce potassium application", "Use balanced NPK fertilizers"},
	model.ParamPH:         {"Apply sulfur to decrease pH", "Elemental sulfur at 100-200 kg/ha"},
}

// AnalyzeSoilTreatment evaluates each known parameter against its optimal
// range and emits one directive per out-of-range value. Output order
// follows input order; in-range and unknown parameters are skipped.
func AnalyzeSoilTreatment(params []model.Parameter) []model.TreatmentDirective {
	var out []model.TreatmentDirective
	for _, p := range params {
		rng, known := optimalRanges[p.Name]
		if !known {
			continue
		}
		var fix remedy
		switch {
		case p.Value < rng.Min:
			fix = lowRemedies[p.Name]
		case p.Value > rng.Max:
			var ok bool
			if fix, ok = highRemedies[p.Name]; !ok {
				continue
			}
		default:
			continue
		}
		out = append(out, model.TreatmentDirective{
			Parameter:                strings.ToUpper(p.Name),
			CurrentValue:             p.Value,
			OptimalRange:             rng,
			TreatmentSuggestion:      fix.treatment,
			FertilizerRecommendation: fix.fertilizer,
		})
	}
	return out
}
