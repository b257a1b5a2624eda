package internal

import (
	"fmt"
	"time"

	"github.com/dublin-fuel/prices-api/internal/models"
)

var Attribution = []string{
	"Prices are community-reported and unverified.",
	"Report what you see at the pump; add a photo when you can so others can verify.",
}

// BuildStationViews merges the static catalog with the latest reports into
// the per-station effective view. The result preserves catalog order.
func BuildStationViews(stations []models.Station, latest map[string]models.PriceReport, retailers map[string]*models.Retailer) []models.StationView {
	now := time.Now()
	views := make([]models.StationView, 0, len(stations))

	for _, station := range stations {
		view := models.StationView{
			Station: station,
			Prices:  EffectivePrices(station, latest),
		}

		if report, ok := latest[station.ID]; ok {
			reportedAt := report.ReportedAt
			view.Reported = true
			view.ReportedAt = &reportedAt
			view.LastReported = FormatRelative(reportedAt, now)
			view.PhotoURL = report.PhotoURL
			view.UnusualPrice = UnusualFor(view.Prices, &report)
		} else {
			view.UnusualPrice = UnusualFor(view.Prices, nil)
		}

		if retailers != nil {
			view.Retailer = retailers[station.Brand]
		}

		views = append(views, view)
	}

	return views
}

// FormatRelative renders a coarse "how long ago" label for display.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	hours := int(diff.Hours())
	mins := int(diff.Minutes()) % 60

	switch {
	case hours >= 24:
		return fmt.Sprintf("%dd ago", hours/24)
	case hours > 0:
		return fmt.Sprintf("%dh %dm ago", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm ago", mins)
	default:
		return "Just now"
	}
}
