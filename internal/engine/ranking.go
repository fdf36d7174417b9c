package engine

import (
	"sort"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// Rank joins the selector's candidates with the reference store, applies
// the per-hectare budget filter and orders the result: crops within budget
// first, sorted by profit margin descending (stable), then the over-budget
// ones in their original probability order. Candidates absent from the
// store are silently dropped.
func (s *Store) Rank(candidates []model.SuitabilityScore, budget float64) []model.Recommendation {
	recommended := make([]model.Recommendation, 0, len(candidates))
	overBudget := make([]model.Recommendation, 0)

	for _, cand := range candidates {
		p, ok := s.Lookup(cand.Crop)
		if !ok {
			continue
		}

		revenue := p.AvgYield * p.AvgMarketPrice * yieldUnitConversion
		netProfit := revenue - p.CultivationCost
		margin := 0.0
		if revenue > 0 {
			margin = netProfit / revenue * 100
		}

		rec := model.Recommendation{
			Crop:             cand.Crop,
			AgronomicScore:   cand.Probability * 100,
			EstimatedCost:    p.CultivationCost,
			GrowingSeason:    p.GrowingSeason,
			WaterRequirement: p.WaterRequirement,
		}
		if p.CultivationCost <= budget {
			est := netProfit
			rec.EstimatedProfit = &est
			rec.ProfitMargin = margin
			rec.Status = model.StatusRecommended
			recommended = append(recommended, rec)
		} else {
			// Profit margin is defined only for recommended entries.
			rec.Status = model.StatusOverBudget
			rec.OverBudgetBy = p.CultivationCost - budget
			overBudget = append(overBudget, rec)
		}
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].ProfitMargin > recommended[j].ProfitMargin
	})
	return append(recommended, overBudget...)
}
