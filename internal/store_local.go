package internal

import (
	"database/sql"
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/dublin-fuel/prices-api/internal/models"
)

const insertReportSQL = `
INSERT INTO price_reports (id, station_id, petrol, diesel, premium_petrol, premium_diesel, photo_url, reported_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const listReportsSQL = `
SELECT id, station_id, petrol, diesel, premium_petrol, premium_diesel, photo_url, reported_at
FROM price_reports
ORDER BY reported_at DESC, rowid DESC`

// localStore is the demo-mode fallback used when no Supabase backend is
// configured: an append-only sqlite table with client-generated identifiers
// and timestamps. Photo payloads cannot be persisted here, so the photo
// reference is downgraded to the "local" sentinel.
type localStore struct {
	db *sql.DB
}

func NewLocalStore(db *sql.DB) ReportStore {
	return &localStore{db: db}
}

func (s *localStore) Insert(report models.NewReport) (models.PriceReport, error) {
	stored := models.PriceReport{
		ID:         uuid.NewString(),
		StationID:  report.StationID,
		FuelPrices: report.Prices,
		ReportedAt: time.Now().UTC(),
	}
	if report.Photo != nil {
		sentinel := models.PhotoLocalOnly
		stored.PhotoURL = &sentinel
	}

	_, err := s.db.Exec(insertReportSQL,
		stored.ID,
		stored.StationID,
		nullable(stored.Petrol),
		nullable(stored.Diesel),
		nullable(stored.PremiumPetrol),
		nullable(stored.PremiumDiesel),
		nullableString(stored.PhotoURL),
		stored.ReportedAt,
	)
	if err != nil {
		return models.PriceReport{}, &LocalPersistenceError{Err: err}
	}

	return stored, nil
}

func (s *localStore) ListAll() ([]models.PriceReport, error) {
	rows, err := s.db.Query(listReportsSQL)
	if err != nil {
		return nil, &QueryError{Op: "list local reports", Err: err}
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var reports []models.PriceReport
	for rows.Next() {
		var report models.PriceReport
		var petrol, diesel, premiumPetrol, premiumDiesel sql.NullFloat64
		var photoURL sql.NullString
		if err := rows.Scan(
			&report.ID, &report.StationID,
			&petrol, &diesel, &premiumPetrol, &premiumDiesel,
			&photoURL, &report.ReportedAt,
		); err != nil {
			return nil, &QueryError{Op: "scan local report", Err: err}
		}
		report.Petrol = fromNullable(petrol)
		report.Diesel = fromNullable(diesel)
		report.PremiumPetrol = fromNullable(premiumPetrol)
		report.PremiumDiesel = fromNullable(premiumDiesel)
		if photoURL.Valid {
			report.PhotoURL = &photoURL.String
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "iterate local reports", Err: err}
	}

	return reports, nil
}

func (s *localStore) Check() checks.Check {
	return &sqliteCheck{db: s.db}
}

func (s *localStore) Close() error {
	return errors.Wrap(s.db.Close(), "failed to close fallback database")
}

type sqliteCheck struct {
	db *sql.DB
}

func (c *sqliteCheck) Name() string {
	return "sqlite"
}

func (c *sqliteCheck) Pass() bool {
	return c.db.Ping() == nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
