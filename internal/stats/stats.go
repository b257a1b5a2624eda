package stats

import (
	"math"

	"github.com/dublin-fuel/prices-api/internal/models"
)

// Derive summarises the merged station views per fuel type: lowest, average
// and highest price, spread, the stations selling at the lowest price, and
// how the results break down by brand.
func Derive(results []models.StationView) *models.PriceStatistics {
	stats := &models.PriceStatistics{
		CheapestStations:  make(map[string][]string),
		LowestPrice:       make(map[string]float64),
		AveragePrice:      make(map[string]float64),
		HighestPrice:      make(map[string]float64),
		StandardDeviation: make(map[string]float64),
		BrandDistribution: make(map[string]int),
	}

	fuelTypePrices := make(map[string][]float64)
	fuelTypeStations := make(map[string]map[float64][]string) // price -> station ids

	for _, result := range results {
		for fuelType, price := range result.Prices.ByType() {
			if price == nil {
				continue
			}

			fuelTypePrices[fuelType] = append(fuelTypePrices[fuelType], *price)

			if fuelTypeStations[fuelType] == nil {
				fuelTypeStations[fuelType] = make(map[float64][]string)
			}
			fuelTypeStations[fuelType][*price] = append(fuelTypeStations[fuelType][*price], result.ID)
		}
	}

	for fuelType, prices := range fuelTypePrices {
		if len(prices) == 0 {
			continue
		}

		lowestPrice := prices[0]
		highestPrice := prices[0]
		sum := 0.0

		for _, p := range prices {
			if p < lowestPrice {
				lowestPrice = p
			}
			if p > highestPrice {
				highestPrice = p
			}
			sum += p
		}
		stats.LowestPrice[fuelType] = lowestPrice
		stats.HighestPrice[fuelType] = highestPrice
		stats.CheapestStations[fuelType] = fuelTypeStations[fuelType][lowestPrice]

		avgPrice := sum / float64(len(prices))
		// Round to a tenth of a cent, matching pump display precision.
		stats.AveragePrice[fuelType] = math.Round(avgPrice*1000) / 1000

		if len(prices) > 1 {
			variance := 0.0
			for _, p := range prices {
				variance += math.Pow(p-avgPrice, 2)
			}
			variance /= float64(len(prices))
			stats.StandardDeviation[fuelType] = math.Sqrt(variance)
		}
	}

	for _, result := range results {
		stats.BrandDistribution[result.Brand]++
	}

	return stats
}
