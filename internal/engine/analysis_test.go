package engine

import (
	"strings"
	"testing"

	"github.com/rs-patil/cropadvisor/internal/model"
)

func TestAnalyzeCropFromCandidates(t *testing.T) {
	s := NewStore()
	cands := topScores(
		model.SuitabilityScore{Crop: "rice", Probability: 0.72},
		model.SuitabilityScore{Crop: "maize", Probability: 0.11},
	)
	got := s.AnalyzeCrop(cands, "rice", model.SoilParameters{})
	if got.SuitabilityScore != 72 {
		t.Fatalf("score = %.2f, want 72 (probability × 100)", got.SuitabilityScore)
	}
	if !got.IsSuitable {
		t.Error("score 72 must be suitable")
	}

	// Case-insensitive crop match, as users type free-form names.
	upper := s.AnalyzeCrop(cands, "Rice", model.SoilParameters{})
	if upper.SuitabilityScore != 72 {
		t.Errorf("case-insensitive lookup score = %.2f, want 72", upper.SuitabilityScore)
	}
}

func TestAnalyzeCropThresholdFallback(t *testing.T) {
	s := NewStore()

	tests := []struct {
		name string
		soil model.SoilParameters
		want float64
	}{
		{
			name: "all tight-optimal",
			soil: model.SoilParameters{Nitrogen: 60, Phosphorus: 45, Potassium: 60, PH: 6.5, Temperature: 25},
			want: (90 + 90 + 90 + 95 + 90) / 5.0,
		},
		{
			name: "all loose-optimal",
			soil: model.SoilParameters{Nitrogen: 35, Phosphorus: 65, Potassium: 85, PH: 5.7, Temperature: 33},
			want: (75 + 75 + 75 + 80 + 75) / 5.0,
		},
		{
			name: "all out of range",
			soil: model.SoilParameters{Nitrogen: 5, Phosphorus: 5, Potassium: 5, PH: 4.0, Temperature: 5},
			want: (50 + 50 + 50 + 60 + 60) / 5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No candidates → the crop is never found, forcing fallback.
			got := s.AnalyzeCrop(nil, "coffee", tt.soil)
			if got.SuitabilityScore != tt.want {
				t.Errorf("score = %.2f, want %.2f", got.SuitabilityScore, tt.want)
			}
			if got.IsSuitable != (tt.want >= 60) {
				t.Errorf("is_suitable = %v for score %.2f", got.IsSuitable, tt.want)
			}
		})
	}
}

func TestAnalyzeCropParameterAnalysis(t *testing.T) {
	s := NewStore()
	soil := model.SoilParameters{Nitrogen: 20, Phosphorus: 50, Potassium: 90, PH: 5.5, Temperature: 32}
	got := s.AnalyzeCrop(nil, "rice", soil)

	if len(got.Parameters) != 5 {
		t.Fatalf("got %d coarse assessments, want 5 (N, P, K, ph, temperature)", len(got.Parameters))
	}
	wantStatus := map[string]string{
		model.ParamNitrogen:    model.StatusLow,
		model.ParamPhosphorus:  model.StatusOptimal,
		model.ParamPotassium:   model.StatusHigh,
		model.ParamPH:          model.StatusAcidic,
		model.ParamTemperature: model.StatusOptimal, // the coarse band runs to 35
	}
	for param, want := range wantStatus {
		a, ok := got.Parameters[param]
		if !ok {
			t.Errorf("missing assessment for %s", param)
			continue
		}
		if a.Status != want {
			t.Errorf("%s status = %q, want %q", param, a.Status, want)
		}
	}
	if a := got.Parameters[model.ParamNitrogen]; a.Current != "20 kg/ha" || a.Range != "40-80 kg/ha" {
		t.Errorf("nitrogen assessment = %+v", a)
	}
	if a := got.Parameters[model.ParamTemperature]; a.Optimal != "20-35°C" {
		t.Errorf("temperature optimal = %q", a.Optimal)
	}
}

func TestAnalyzeCropUnknownCropDegrades(t *testing.T) {
	// A crop absent from the reference store must not fail; it falls back
	// to parameter-threshold scoring.
	s := NewStore()
	soil := model.SoilParameters{Nitrogen: 60, Phosphorus: 45, Potassium: 60, PH: 6.5, Temperature: 25}
	got := s.AnalyzeCrop(nil, "durian", soil)
	if got.SuitabilityScore == 0 {
		t.Fatal("fallback score missing for unknown crop")
	}
}

func TestAssessParameters(t *testing.T) {
	soil := model.SoilParameters{
		Nitrogen: 20, Phosphorus: 45, Potassium: 90,
		Temperature: 25, Humidity: 85, PH: 5.2, Rainfall: 30,
	}
	got := AssessParameters(soil.Parameters())
	if len(got) != 7 {
		t.Fatalf("got %d assessments, want 7", len(got))
	}

	byName := map[string]model.ParameterAssessment{}
	for _, a := range got {
		byName[a.Parameter] = a
	}

	checks := []struct {
		param  string
		status string
	}{
		{model.ParamNitrogen, model.StatusLow},
		{model.ParamPhosphorus, model.StatusOptimal},
		{model.ParamPotassium, model.StatusHigh},
		{model.ParamTemperature, model.StatusOptimal},
		{model.ParamHumidity, model.StatusHigh},
		{model.ParamPH, model.StatusAcidic},
		{model.ParamRainfall, model.StatusLow},
	}
	for _, c := range checks {
		a, ok := byName[c.param]
		if !ok {
			t.Errorf("missing assessment for %s", c.param)
			continue
		}
		if a.Status != c.status {
			t.Errorf("%s status = %s, want %s", c.param, a.Status, c.status)
		}
		if c.status == model.StatusOptimal && a.Recommendation != "" {
			t.Errorf("%s optimal but has recommendation %q", c.param, a.Recommendation)
		}
		if c.status != model.StatusOptimal && a.Recommendation == "" {
			t.Errorf("%s non-optimal but has no recommendation", c.param)
		}
	}
}

func TestBuildImprovementPlanPriorities(t *testing.T) {
	assessments := []model.ParameterAssessment{
		{Parameter: model.ParamNitrogen, Current: 20, Status: model.StatusLow, Recommendation: "add N"},
		{Parameter: model.ParamPH, Current: 5.2, Status: model.StatusAcidic, Recommendation: "add lime"},
		{Parameter: model.ParamPhosphorus, Current: 45, Status: model.StatusOptimal},
	}
	plan := BuildImprovementPlan("rice", assessments)
	if len(plan.Improvements) != 2 {
		t.Fatalf("got %d improvements, want 2", len(plan.Improvements))
	}
	if plan.Improvements[0].Priority != model.PriorityHigh {
		t.Errorf("low N priority = %s, want High", plan.Improvements[0].Priority)
	}
	if plan.Improvements[1].Priority != model.PriorityMedium {
		t.Errorf("acidic pH priority = %s, want Medium", plan.Improvements[1].Priority)
	}
	if !strings.Contains(plan.Summary, "2 parameters") {
		t.Errorf("summary = %q", plan.Summary)
	}
}

func TestBuildImprovementPlanOptimalSoil(t *testing.T) {
	plan := BuildImprovementPlan("maize", []model.ParameterAssessment{
		{Parameter: model.ParamNitrogen, Current: 60, Status: model.StatusOptimal},
	})
	if len(plan.Improvements) != 0 {
		t.Fatalf("got %d improvements, want 0", len(plan.Improvements))
	}
	if !strings.Contains(plan.Message, "maize") {
		t.Errorf("message = %q, want crop name mentioned", plan.Message)
	}
}

func TestBuildCostPlanWithImprovements(t *testing.T) {
	plan := model.ImprovementPlan{Improvements: []model.Improvement{
		{Parameter: "N", Priority: model.PriorityHigh},
		{Parameter: "PH", Priority: model.PriorityMedium},
		{Parameter: "TEMPERATURE", Priority: model.PriorityHigh}, // no line item
	}}
	cp := BuildCostPlan("rice", plan, 2.0)

	// N fertilizer 16000 + pH correction 8000 + seeds 6000 + labor 10000
	// + equipment 4000 = 44000 over 2 ha.
	if cp.TotalCost != 44000 {
		t.Fatalf("total = %.0f, want 44000", cp.TotalCost)
	}
	if cp.CostPerHectare != 22000 {
		t.Errorf("per hectare = %.0f, want 22000", cp.CostPerHectare)
	}
	if len(cp.Breakdown) != 5 {
		t.Errorf("breakdown has %d items, want 5", len(cp.Breakdown))
	}
	if cp.Message != "" {
		t.Errorf("unexpected message %q", cp.Message)
	}
}

func TestBuildCostPlanMaintenanceOnly(t *testing.T) {
	cp := BuildCostPlan("mango", model.ImprovementPlan{}, 1.0)
	// Seeds 3000 + maintenance fertilizer 4000 + labor 4000 + equipment 1500.
	if cp.TotalCost != 12500 {
		t.Fatalf("total = %.0f, want 12500", cp.TotalCost)
	}
	if cp.Message == "" {
		t.Error("maintenance plan must carry an informational message")
	}
}

func TestBuildCostPlanZeroFarmSize(t *testing.T) {
	cp := BuildCostPlan("rice", model.ImprovementPlan{}, 0)
	if cp.CostPerHectare != 0 {
		t.Fatalf("per hectare = %.2f, want 0 for zero farm size", cp.CostPerHectare)
	}
}

func TestAnalyzeCropDetailed(t *testing.T) {
	s := NewStore()
	soil := model.SoilParameters{
		Nitrogen: 20, Phosphorus: 25, Potassium: 35,
		PH: 5.0, Humidity: 45, Temperature: 22, Rainfall: 40,
	}
	got := s.AnalyzeCropDetailed(nil, "rice", soil, 1.5)

	if len(got.Parameters) != 7 {
		t.Fatalf("got %d parameter assessments, want 7", len(got.Parameters))
	}
	if len(got.ImprovementPlan.Improvements) == 0 {
		t.Fatal("expected improvements for deficient soil")
	}
	if got.CostPlan.TotalCost <= 0 {
		t.Fatal("cost plan missing")
	}
	if got.CostPlan.FarmSize != 1.5 {
		t.Errorf("farm size = %.1f, want 1.5", got.CostPlan.FarmSize)
	}
}
