package internal

import (
	"sort"

	"github.com/dublin-fuel/prices-api/internal/models"
)

// ReduceLatest reduces a report listing to the newest report per station.
// The input is expected newest-first but is re-sorted as a guard; for an
// already-seen station every later row is discarded, so the newest report's
// price set wins wholesale (never a field-by-field mix).
func ReduceLatest(reports []models.PriceReport) map[string]models.PriceReport {
	sorted := make([]models.PriceReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReportedAt.After(sorted[j].ReportedAt)
	})

	byStation := make(map[string]models.PriceReport, len(sorted))
	for _, report := range sorted {
		if _, seen := byStation[report.StationID]; !seen {
			byStation[report.StationID] = report
		}
	}
	return byStation
}

// EffectivePrices resolves a station's displayed price set: the latest
// report's set entirely replaces the baseline when a report exists.
func EffectivePrices(station models.Station, latest map[string]models.PriceReport) models.FuelPrices {
	if report, ok := latest[station.ID]; ok {
		return report.FuelPrices
	}
	return station.Prices
}
