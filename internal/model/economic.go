package model

// CropType classifies a crop for rotation planning.
type CropType string

const (
	TypeCereal    CropType = "cereal"
	TypeLegume    CropType = "legume"
	TypeFruit     CropType = "fruit"
	TypeVegetable CropType = "vegetable"
	TypeFiber     CropType = "fiber"
	TypeBeverage  CropType = "beverage"
)

// Season is the growing season a crop is planted in.
type Season string

const (
	SeasonKharif    Season = "Kharif"
	SeasonRabi      Season = "Rabi"
	SeasonSummer    Season = "Summer"
	SeasonYearRound Season = "Year-round"
)

// WaterNeed is the qualitative water requirement of a crop.
type WaterNeed string

const (
	WaterLow    WaterNeed = "Low"
	WaterMedium WaterNeed = "Medium"
	WaterHigh   WaterNeed = "High"
)

// EconomicProfile is the per-crop reference row. Loaded once at startup
// and never mutated afterwards.
type EconomicProfile struct {
	CultivationCost  float64   `json:"cultivation_cost_per_hectare"`
	AvgYield         float64   `json:"avg_yield_per_hectare"` // tonnes/ha
	AvgMarketPrice   float64   `json:"avg_market_price_per_quintal"`
	CropType         CropType  `json:"crop_type"`
	GrowingSeason    Season    `json:"growing_season"`
	WaterRequirement WaterNeed `json:"water_requirement"`
}
