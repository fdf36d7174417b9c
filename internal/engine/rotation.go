package engine

import "github.com/rs-patil/cropadvisor/internal/model"

// rotationSequences maps a starting crop type to the type of each
// successive year. The sequence length fixes the plan length.
var rotationSequences = map[model.CropType][]model.CropType{
	model.TypeCereal:   {model.TypeLegume, model.TypeVegetable, model.TypeCereal},
	model.TypeLegume:   {model.TypeCereal, model.TypeFruit, model.TypeLegume},
	model.TypeFruit:    {model.TypeLegume, model.TypeCereal, model.TypeFruit},
	model.TypeFiber:    {model.TypeLegume, model.TypeCereal, model.TypeFiber},
	model.TypeBeverage: {model.TypeLegume, model.TypeVegetable, model.TypeBeverage},
}

var defaultSequence = []model.CropType{model.TypeLegume, model.TypeCereal, model.TypeFruit}

// cropsByType lists the fixed rotation candidates per type.
var cropsByType = map[model.CropType][]string{
	model.TypeCereal:    {"rice", "maize"},
	model.TypeLegume:    {"chickpea", "lentil", "mungbean", "blackgram"},
	model.TypeVegetable: {"watermelon", "muskmelon", "papaya"},
	model.TypeFruit:     {"banana", "mango", "grapes", "orange"},
	model.TypeFiber:     {"cotton", "jute"},
	model.TypeBeverage:  {"coffee"},
}

var typeBenefits = map[model.CropType][]string{
	model.TypeCereal:    {"Provides staple grain", "Good market demand", "Moderate water requirement"},
	model.TypeLegume:    {"Nitrogen fixation", "Soil fertility improvement", "Low water requirement"},
	model.TypeFruit:     {"High market value", "Long-term investment", "Orchard development"},
	model.TypeVegetable: {"Quick returns", "High nutrition value", "Market flexibility"},
	model.TypeFiber:     {"Industrial demand", "Good export potential", "Drought tolerance"},
	model.TypeBeverage:  {"Premium pricing", "Export opportunity", "Sustainable farming"},
}

var fallbackBenefits = []string{"Crop diversification"}

// RotationPlan builds the multi-year rotation plan for a primary crop.
// Year 1 always replants the primary crop; later years pick the most
// profitable candidate of the sequence's target type, ties resolved by
// candidate-list order. Seasons alternate Kharif (odd years) and Rabi
// (even years). An unknown primary crop yields an empty plan.
func (s *Store) RotationPlan(primaryCrop string) []model.RotationStep {
	primary, ok := s.Lookup(primaryCrop)
	if !ok {
		return nil
	}

	sequence, ok := rotationSequences[primary.CropType]
	if !ok {
		sequence = defaultSequence
	}

	plan := make([]model.RotationStep, 0, len(sequence))
	for i, targetType := range sequence {
		year := i + 1

		crop := primaryCrop
		cropType := primary.CropType
		if year > 1 {
			crop = s.bestOfType(targetType)
			cropType = targetType
		}

		estimated := 0.0
		if p, ok := s.Lookup(crop); ok {
			estimated = profit(p)
		}
		if estimated < 0 {
			estimated = 0 // display clamp
		}

		season := model.SeasonKharif
		if year%2 == 0 {
			season = model.SeasonRabi
		}

		benefits := typeBenefits[cropType]
		if benefits == nil {
			benefits = fallbackBenefits
		}

		plan = append(plan, model.RotationStep{
			Year:            year,
			Season:          season,
			RecommendedCrop: crop,
			CropType:        cropType,
			Benefits:        benefits,
			EstimatedProfit: estimated,
		})
	}
	return plan
}

// bestOfType returns the candidate of the given type with the highest
// profit. A type with no profitable candidate falls back to the first
// entry of its candidate list; unknown types fall back to rice.
func (s *Store) bestOfType(t model.CropType) string {
	candidates, ok := cropsByType[t]
	if !ok || len(candidates) == 0 {
		return "rice"
	}
	best := candidates[0]
	bestProfit := 0.0
	for _, c := range candidates {
		p, ok := s.Lookup(c)
		if !ok {
			continue
		}
		if pr := profit(p); pr > bestProfit {
			bestProfit = pr
			best = c
		}
	}
	return best
}
