package model

// RotationStep is one year of a multi-year rotation plan.
// EstimatedProfit is clamped to zero for display.
type RotationStep struct {
	Year            int      `json:"year"`
	Season          Season   `json:"season"`
	RecommendedCrop string   `json:"recommended_crop"`
	CropType        CropType `json:"crop_type"`
	Benefits        []string `json:"benefits"`
	EstimatedProfit float64  `json:"estimated_profit"`
}
