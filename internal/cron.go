package internal

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/dublin-fuel/prices-api/internal/models"
)

const CRON_SCHEDULE_METRICS = "*/15 * * * *" // Every 15 minutes

// StartCron keeps the published price gauges in step with reports submitted
// from other clients, which would otherwise only be picked up on the next
// local submission.
func StartCron(svc *ReportService, stations []models.Station) (*cron.Cron, error) {
	c := cron.New()

	log.Print("Starting CRON job to refresh price metrics")

	if _, err := c.AddFunc(CRON_SCHEDULE_METRICS, func() {
		RefreshMetrics(svc, stations)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
