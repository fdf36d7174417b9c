package model

// Price trend labels.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

// Demand levels.
const (
	DemandHigh   = "high"
	DemandMedium = "medium"
	DemandLow    = "low"
)

// MarketAnalysis is the per-crop market snapshot produced by the price
// oracle. It is context for the user, not an input to the decision engine.
type MarketAnalysis struct {
	Crop            string  `json:"crop"`
	CurrentPrice    float64 `json:"current_price"`
	PriceTrend      string  `json:"price_trend"`
	DemandLevel     string  `json:"demand_level"`
	ProfitPotential float64 `json:"profit_potential"`
}

// PricePoint is one day of a simulated price series.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MarketTrends is the 30-day market simulation snapshot.
type MarketTrends struct {
	PriceHistory    map[string][]PricePoint       `json:"price_history"`
	SeasonalFactors map[string]map[string]float64 `json:"seasonal_factors"`
	GeneratedAt     string                        `json:"generated_at"`
}
