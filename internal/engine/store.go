// Package engine holds the recommendation and advisory decision core.
// Every exported function here is a pure, synchronous computation over its
// inputs: no I/O, no retries, no shared mutable state. The only long-lived
// value is the economic reference store, which is read-only after load, so
// the whole package is safe for concurrent use.
package engine

import (
	"sort"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// yieldUnitConversion converts tonnes to quintals: revenue is
// yield (t/ha) × price (per quintal) × 10.
const yieldUnitConversion = 10.0

// Store is the immutable per-crop economic reference table.
type Store struct {
	profiles map[string]model.EconomicProfile
}

// NewStore returns the store loaded with the built-in reference dataset.
func NewStore() *Store {
	return &Store{profiles: referenceData()}
}

// Lookup returns the profile for a crop, if known.
func (s *Store) Lookup(crop string) (model.EconomicProfile, bool) {
	p, ok := s.profiles[crop]
	return p, ok
}

// Crops returns all known crop names in sorted order.
func (s *Store) Crops() []string {
	out := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of reference rows.
func (s *Store) Len() int { return len(s.profiles) }

// profit computes yield × price × 10 − cost for a profile.
func profit(p model.EconomicProfile) float64 {
	return p.AvgYield*p.AvgMarketPrice*yieldUnitConversion - p.CultivationCost
}

func referenceData() map[string]model.EconomicProfile {
	return map[string]model.EconomicProfile{
		"rice":        {CultivationCost: 32000, AvgYield: 6.0, AvgMarketPrice: 2500, CropType: model.TypeCereal, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterHigh},
		"maize":       {CultivationCost: 22000, AvgYield: 5.5, AvgMarketPrice: 2000, CropType: model.TypeCereal, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterMedium},
		"chickpea":    {CultivationCost: 18000, AvgYield: 1.5, AvgMarketPrice: 5000, CropType: model.TypeLegume, GrowingSeason: model.SeasonRabi, WaterRequirement: model.WaterLow},
		"kidneybeans": {CultivationCost: 20000, AvgYield: 1.8, AvgMarketPrice: 4800, CropType: model.TypeLegume, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterMedium},
		"pigeonpeas":  {CultivationCost: 21000, AvgYield: 2.0, AvgMarketPrice: 4500, CropType: model.TypeLegume, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterLow},
		"mothbeans":   {CultivationCost: 17000, AvgYield: 1.2, AvgMarketPrice: 4000, CropType: model.TypeLegume, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterLow},
		"mungbean":    {CultivationCost: 18500, AvgYield: 1.4, AvgMarketPrice: 5200, CropType: model.TypeLegume, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterLow},
		"blackgram":   {CultivationCost: 19000, AvgYield: 1.3, AvgMarketPrice: 5100, CropType: model.TypeLegume, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterLow},
		"lentil":      {CultivationCost: 17500, AvgYield: 1.1, AvgMarketPrice: 4900, CropType: model.TypeLegume, GrowingSeason: model.SeasonRabi, WaterRequirement: model.WaterLow},
		"pomegranate": {CultivationCost: 60000, AvgYield: 15.0, AvgMarketPrice: 8000, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterMedium},
		"banana":      {CultivationCost: 75000, AvgYield: 50.0, AvgMarketPrice: 1500, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterHigh},
		"mango":       {CultivationCost: 80000, AvgYield: 12.0, AvgMarketPrice: 3000, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterMedium},
		"grapes":      {CultivationCost: 150000, AvgYield: 20.0, AvgMarketPrice: 4000, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterMedium},
		"watermelon":  {CultivationCost: 25000, AvgYield: 30.0, AvgMarketPrice: 1200, CropType: model.TypeFruit, GrowingSeason: model.SeasonSummer, WaterRequirement: model.WaterMedium},
		"muskmelon":   {CultivationCost: 26000, AvgYield: 28.0, AvgMarketPrice: 1500, CropType: model.TypeFruit, GrowingSeason: model.SeasonSummer, WaterRequirement: model.WaterMedium},
		"apple":       {CultivationCost: 180000, AvgYield: 25.0, AvgMarketPrice: 6000, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterMedium},
		"orange":      {CultivationCost: 70000, AvgYield: 22.0, AvgMarketPrice: 2500, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterMedium},
		"papaya":      {CultivationCost: 55000, AvgYield: 40.0, AvgMarketPrice: 1800, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterMedium},
		"coconut":     {CultivationCost: 90000, AvgYield: 10.0, AvgMarketPrice: 3500, CropType: model.TypeFruit, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterHigh},
		"cotton":      {CultivationCost: 24500, AvgYield: 2.5, AvgMarketPrice: 6000, CropType: model.TypeFiber, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterMedium},
		"jute":        {CultivationCost: 23000, AvgYield: 2.2, AvgMarketPrice: 3000, CropType: model.TypeFiber, GrowingSeason: model.SeasonKharif, WaterRequirement: model.WaterHigh},
		"coffee":      {CultivationCost: 120000, AvgYield: 1.0, AvgMarketPrice: 15000, CropType: model.TypeBeverage, GrowingSeason: model.SeasonYearRound, WaterRequirement: model.WaterHigh},
	}
}
