package internal

import "github.com/dublin-fuel/prices-api/internal/models"

// Expected €/L range for Irish forecourts. Prices outside the band are
// flagged as unusual; the band edges themselves are not flagged. The flag
// is advisory only and never blocks a submission.
const (
	MinTypicalPrice = 1.20
	MaxTypicalPrice = 2.40
)

func unusualValue(price float64) bool {
	return price < MinTypicalPrice || price > MaxTypicalPrice
}

// UnusualPrices reports whether any present price falls outside the typical
// band.
func UnusualPrices(prices models.FuelPrices) bool {
	for _, price := range prices.ByType() {
		if price != nil && unusualValue(*price) {
			return true
		}
	}
	return false
}

// UnusualFor applies the display policy: the notice is suppressed when the
// station's latest report carries a verifiable photo, since the photo lets
// anyone check the number regardless of how odd it looks.
func UnusualFor(prices models.FuelPrices, latest *models.PriceReport) bool {
	if latest != nil && latest.HasVerifiablePhoto() {
		return false
	}
	return UnusualPrices(prices)
}
