// Package market is a price oracle for the advisory API. It has no live
// exchange feed: prices are simulated around a reference table with an
// injected random source, so tests and repeated calls under a fixed seed
// produce identical output.
package market

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// basePrices holds reference prices per quintal.
var basePrices = map[string]float64{
	"rice":        2500,
	"maize":       2000,
	"chickpea":    5000,
	"kidneybeans": 4800,
	"pigeonpeas":  4500,
	"mothbeans":   4000,
	"mungbean":    5200,
	"blackgram":   5100,
	"lentil":      4900,
	"pomegranate": 8000,
	"banana":      1500,
	"mango":       3000,
	"grapes":      4000,
	"watermelon":  1200,
	"muskmelon":   1500,
	"apple":       6000,
	"orange":      2500,
	"papaya":      1800,
	"coconut":     3500,
	"cotton":      6000,
	"jute":        3000,
	"coffee":      15000,
}

// majorCrops get a simulated 30-day price series in the trends report.
var majorCrops = []string{"rice", "maize", "chickpea", "cotton", "mango"}

// seasonalFactors express relative seasonal price pressure for the crops
// with a pronounced seasonal cycle. Crops not listed trade flat.
var seasonalFactors = map[string]map[string]float64{
	"rice":       {"kharif": 1.1, "rabi": 0.9, "summer": 1.0},
	"maize":      {"kharif": 1.0, "rabi": 1.1, "summer": 0.9},
	"chickpea":   {"kharif": 0.8, "rabi": 1.2, "summer": 1.0},
	"watermelon": {"kharif": 0.9, "rabi": 0.8, "summer": 1.3},
}

const historyDays = 30

// Service simulates market conditions. The random source is injected so
// callers control reproducibility; access to it is serialized.
type Service struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// Analyze produces a market snapshot for one crop: current price within
// ±15% of the reference, a trend label, a demand level weighted by the
// trend, and a profit potential multiplier. Crops outside the reference
// table have no snapshot; the second return reports whether one exists.
func (s *Service) Analyze(crop string) (model.MarketAnalysis, bool) {
	base, ok := basePrices[strings.ToLower(crop)]
	if !ok {
		return model.MarketAnalysis{}, false
	}

	s.mu.Lock()
	variation := (s.rng.Float64()*2 - 1) * 0.15
	demandRoll := s.rng.Float64()
	s.mu.Unlock()

	price := base * (1 + variation)

	trend := model.TrendStable
	switch {
	case variation > 0.05:
		trend = model.TrendRising
	case variation < -0.05:
		trend = model.TrendFalling
	}

	demand := demandLevel(trend, demandRoll)

	potential := 1.0
	if trend == model.TrendRising && demand == model.DemandHigh {
		potential = 1.2
	} else if trend == model.TrendFalling && demand == model.DemandLow {
		potential = 0.8
	}

	return model.MarketAnalysis{
		Crop:            crop,
		CurrentPrice:    math.Round(price*100) / 100,
		PriceTrend:      trend,
		DemandLevel:     demand,
		ProfitPotential: potential,
	}, true
}

// demandLevel draws high/medium/low, skewed toward high when prices rise.
func demandLevel(trend string, roll float64) string {
	hi := 0.2
	if trend == model.TrendRising {
		hi = 0.3
	}
	switch {
	case roll < hi:
		return model.DemandHigh
	case roll < hi+0.5:
		return model.DemandMedium
	default:
		return model.DemandLow
	}
}

// AnalyzeAll returns snapshots for the given crops, in input order.
// Crops without a reference price are left out.
func (s *Service) AnalyzeAll(crops []string) []model.MarketAnalysis {
	out := make([]model.MarketAnalysis, 0, len(crops))
	for _, c := range crops {
		if a, ok := s.Analyze(c); ok {
			out = append(out, a)
		}
	}
	return out
}

// Trends simulates 30 days of prices for the major crops as a ±2% daily
// random walk from the reference price.
func (s *Service) Trends() model.MarketTrends {
	now := time.Now().UTC()
	history := make(map[string][]model.PricePoint, len(majorCrops))

	s.mu.Lock()
	for _, crop := range majorCrops {
		price := basePrices[crop]
		series := make([]model.PricePoint, 0, historyDays)
		for day := historyDays - 1; day >= 0; day-- {
			price *= 1 + (s.rng.Float64()*2-1)*0.02
			series = append(series, model.PricePoint{
				Date:  now.AddDate(0, 0, -day).Format("2006-01-02"),
				Price: math.Round(price*100) / 100,
			})
		}
		history[crop] = series
	}
	s.mu.Unlock()

	factors := make(map[string]map[string]float64, len(seasonalFactors))
	for crop, bySeason := range seasonalFactors {
		cp := make(map[string]float64, len(bySeason))
		for season, f := range bySeason {
			cp[season] = f
		}
		factors[crop] = cp
	}
	return model.MarketTrends{
		PriceHistory:    history,
		SeasonalFactors: factors,
		GeneratedAt:     now.Format(time.RFC3339),
	}
}
