package internal

import (
	"github.com/dublin-fuel/prices-api/internal/models"
	"github.com/tavsec/gin-healthcheck/checks"
)

// ReportStore persists price reports. Two implementations exist: the remote
// Supabase backend and the local sqlite fallback used when no backend is
// configured. Reports are append-only; there is no update or delete.
type ReportStore interface {
	// Insert writes a validated report, handling the optional photo in a
	// store-specific way, and returns the stored report with its assigned
	// identifier and creation timestamp.
	Insert(report models.NewReport) (models.PriceReport, error)

	// ListAll returns every report, newest first.
	ListAll() ([]models.PriceReport, error)

	Check() checks.Check
	Close() error
}
