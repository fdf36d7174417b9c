package engine

import "github.com/rs-patil/cropadvisor/internal/model"

// Forecast aggregation windows.
const (
	tempWindow = 3 // days averaged for temperature and humidity
	rainWindow = 7 // days summed for rainfall
)

// GenerateAdvisory fuses aggregated forecast statistics and current soil
// data into categorical guidance. All rules operate on the aggregates, not
// per-day records, and the function is idempotent: identical inputs always
// produce identical output. A forecast shorter than the aggregation
// windows is aggregated over what is available; with an empty forecast the
// temperature and humidity rules are skipped and only the rainfall rules
// fire, on a total of zero.
func GenerateAdvisory(forecast []model.WeatherDay, soil model.SoilParameters) model.Advisory {
	hasDays := len(forecast) > 0
	avgTempMax := meanOf(forecast, tempWindow, func(d model.WeatherDay) float64 { return d.TemperatureMax })
	avgHumidity := meanOf(forecast, tempWindow, func(d model.WeatherDay) float64 { return d.Humidity })

	totalRainfall := 0.0
	for i, d := range forecast {
		if i >= rainWindow {
			break
		}
		totalRainfall += d.Rainfall
	}

	adv := model.Advisory{
		// Static guidance; not derived from inputs in this pass.
		HarvestTiming: "Monitor crop maturity - harvest during dry weather for better quality",
	}

	// First matching alert wins, in this priority order.
	switch {
	case hasDays && avgTempMax > 35:
		adv.WeatherAlert = "High temperature warning - Consider heat-resistant crops"
	case hasDays && avgTempMax < 15:
		adv.WeatherAlert = "Low temperature warning - Protect crops from cold"
	case totalRainfall > 100:
		adv.WeatherAlert = "Heavy rainfall expected - Ensure proper drainage"
	case totalRainfall < 10:
		adv.WeatherAlert = "Low rainfall forecast - Plan irrigation"
	}

	switch {
	case avgTempMax >= 20 && avgTempMax <= 30 && totalRainfall >= 20 && totalRainfall <= 60:
		adv.PlantingRecommendation = "Excellent conditions for planting"
	case avgTempMax > 30:
		adv.PlantingRecommendation = "Consider drought-resistant varieties"
	default:
		adv.PlantingRecommendation = "Monitor weather before planting"
	}

	switch {
	case totalRainfall < 20:
		adv.IrrigationAdvice = "Increase irrigation frequency - weekly watering recommended"
	case totalRainfall > 80:
		adv.IrrigationAdvice = "Reduce irrigation - risk of waterlogging"
	default:
		adv.IrrigationAdvice = "Normal irrigation schedule - bi-weekly watering"
	}

	switch {
	case hasDays && avgHumidity > 70 && avgTempMax > 25:
		adv.PestWarning = "High risk of fungal diseases - apply preventive fungicides"
	case hasDays && avgHumidity < 40:
		adv.PestWarning = "Watch for spider mites - monitor regularly"
	}

	return adv
}

func meanOf(days []model.WeatherDay, window int, field func(model.WeatherDay) float64) float64 {
	n := 0
	sum := 0.0
	for i, d := range days {
		if i >= window {
			break
		}
		sum += field(d)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
