package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dublin-fuel/prices-api/internal/models"
)

func TestUnusualPricesBand(t *testing.T) {
	cases := []struct {
		price   float64
		unusual bool
	}{
		{1.199, true},
		{1.20, false},
		{1.699, false},
		{2.40, false},
		{2.401, true},
		{0.05, true},
		{24.0, true},
	}

	for _, tc := range cases {
		got := UnusualPrices(models.FuelPrices{Petrol: price(tc.price)})
		assert.Equal(t, tc.unusual, got, "price %.3f", tc.price)
	}
}

func TestUnusualPricesAnyFieldTriggers(t *testing.T) {
	prices := models.FuelPrices{
		Petrol: price(1.699),
		Diesel: price(0.159), // typo'd by the submitter
	}
	assert.True(t, UnusualPrices(prices))

	assert.False(t, UnusualPrices(models.FuelPrices{}))
}

func TestUnusualForPhotoSuppression(t *testing.T) {
	odd := models.FuelPrices{Petrol: price(0.99)}

	t.Run("flagged without a report", func(t *testing.T) {
		assert.True(t, UnusualFor(odd, nil))
	})

	t.Run("flagged with a local-only photo sentinel", func(t *testing.T) {
		sentinel := models.PhotoLocalOnly
		report := models.PriceReport{PhotoURL: &sentinel}
		assert.True(t, UnusualFor(odd, &report))
	})

	t.Run("suppressed with a verifiable photo", func(t *testing.T) {
		url := "https://example.supabase.co/storage/v1/object/public/price-confirmation-photos/42/abc.jpg"
		report := models.PriceReport{PhotoURL: &url}
		assert.False(t, UnusualFor(odd, &report))
	})
}
