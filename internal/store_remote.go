package internal

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/dublin-fuel/prices-api/internal/models"
)

// remoteStore persists reports in the hosted Supabase backend: photos go to
// object storage first, then the row is inserted. An upload failure aborts
// the whole submission so no row ever references a missing photo.
type remoteStore struct {
	client *SupabaseClient
}

func NewRemoteStore(client *SupabaseClient) ReportStore {
	return &remoteStore{client: client}
}

func (s *remoteStore) Insert(report models.NewReport) (models.PriceReport, error) {
	var photoURL *string
	if report.Photo != nil {
		path := photoPath(report.StationID, report.Photo.Filename)
		if err := s.client.UploadPhoto(path, report.Photo.ContentType, report.Photo.Data); err != nil {
			return models.PriceReport{}, err
		}
		url := s.client.PublicURL(path)
		photoURL = &url
	}

	row := priceReportRow{
		StationID:     report.StationID,
		Petrol:        report.Prices.Petrol,
		Diesel:        report.Prices.Diesel,
		PremiumPetrol: report.Prices.PremiumPetrol,
		PremiumDiesel: report.Prices.PremiumDiesel,
		PhotoURL:      photoURL,
	}

	inserted, err := s.client.InsertReport(row)
	if err != nil {
		return models.PriceReport{}, err
	}

	return rowToReport(inserted)
}

func (s *remoteStore) ListAll() ([]models.PriceReport, error) {
	rows, err := s.client.ListReports()
	if err != nil {
		return nil, &QueryError{Op: "list remote reports", Err: err}
	}

	reports := make([]models.PriceReport, 0, len(rows))
	for _, row := range rows {
		report, err := rowToReport(row)
		if err != nil {
			// Skip rows the backend hands back in a shape we cannot
			// trust rather than failing the whole listing.
			log.Printf("skipping malformed report row %s: %v", row.ID, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *remoteStore) Check() checks.Check {
	return &supabaseCheck{client: s.client}
}

func (s *remoteStore) Close() error {
	return nil
}

type supabaseCheck struct {
	client *SupabaseClient
}

func (c *supabaseCheck) Name() string {
	return "supabase"
}

func (c *supabaseCheck) Pass() bool {
	return c.client.Ping()
}

// photoPath namespaces uploads by station with a fresh uuid, preserving the
// original file extension (defaulting to jpg).
func photoPath(stationID, filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	return stationID + "/" + uuid.NewString() + "." + ext
}

func rowToReport(row priceReportRow) (models.PriceReport, error) {
	reportedAt, err := parseReportedAt(row.ReportedAt)
	if err != nil {
		return models.PriceReport{}, err
	}

	return models.PriceReport{
		ID:        row.ID,
		StationID: row.StationID,
		FuelPrices: models.FuelPrices{
			Petrol:        row.Petrol,
			Diesel:        row.Diesel,
			PremiumPetrol: row.PremiumPetrol,
			PremiumDiesel: row.PremiumDiesel,
		},
		PhotoURL:   row.PhotoURL,
		ReportedAt: reportedAt,
	}, nil
}
