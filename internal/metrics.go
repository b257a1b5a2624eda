package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dublin-fuel/prices-api/internal/models"
	"github.com/dublin-fuel/prices-api/internal/stats"
)

var (
	lowestPriceGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuel_price_lowest_eur_per_litre",
		Help: "Lowest effective price across all stations, by fuel type.",
	}, []string{"fuel_type"})

	averagePriceGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuel_price_average_eur_per_litre",
		Help: "Average effective price across all stations, by fuel type.",
	}, []string{"fuel_type"})

	highestPriceGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuel_price_highest_eur_per_litre",
		Help: "Highest effective price across all stations, by fuel type.",
	}, []string{"fuel_type"})

	reportedStationsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fuel_price_reported_stations",
		Help: "Number of stations with at least one community report.",
	})
)

// RefreshMetrics recomputes the merge view and republishes the price gauges.
// It runs after each successful submission and on the cron schedule.
func RefreshMetrics(svc *ReportService, stations []models.Station) {
	latest := svc.LatestByStation()
	views := BuildStationViews(stations, latest, nil)
	derived := stats.Derive(views)

	for _, fuelType := range models.FuelTypes {
		if v, ok := derived.LowestPrice[fuelType]; ok {
			lowestPriceGauge.WithLabelValues(fuelType).Set(v)
		}
		if v, ok := derived.AveragePrice[fuelType]; ok {
			averagePriceGauge.WithLabelValues(fuelType).Set(v)
		}
		if v, ok := derived.HighestPrice[fuelType]; ok {
			highestPriceGauge.WithLabelValues(fuelType).Set(v)
		}
	}
	reportedStationsGauge.Set(float64(len(latest)))
}
