package internal

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/dublin-fuel/prices-api/internal/models"
)

// StationLookup reports whether a station id exists in the catalog.
type StationLookup func(id string) bool

// ReportService validates submissions and derives the merge view. It owns
// no state beyond the injected store and catalog lookup.
type ReportService struct {
	store ReportStore
	known StationLookup
}

func NewReportService(store ReportStore, known StationLookup) *ReportService {
	return &ReportService{store: store, known: known}
}

// Submit validates the raw input and writes it to the store. Validation
// failures never reach the backend. Reports are only accepted for stations
// present in the catalog.
func (s *ReportService) Submit(input models.ReportInput) (models.PriceReport, error) {
	report, err := ValidateReportInput(input)
	if err != nil {
		return models.PriceReport{}, err
	}
	if s.known != nil && !s.known(report.StationID) {
		return models.PriceReport{}, &ValidationError{Field: "station_id", Reason: "unknown station"}
	}
	return s.store.Insert(report)
}

// LatestByStation returns each station's single most recent report, keyed by
// station id; stations never reported are absent. Query failures degrade to
// an empty map so a backend outage does not hide the static catalog.
func (s *ReportService) LatestByStation() map[string]models.PriceReport {
	reports, err := s.store.ListAll()
	if err != nil {
		log.Printf("falling back to baseline prices, report query failed: %v", err)
		return map[string]models.PriceReport{}
	}
	return ReduceLatest(reports)
}

// Check exposes the underlying store's health check.
func (s *ReportService) Check() checks.Check {
	return s.store.Check()
}

// ValidateReportInput converts a raw submission into a storable report.
// The station id must be non-empty, and at least one of the four prices
// must parse to a finite positive number; "," is accepted as a decimal
// separator and normalised to ".".
func ValidateReportInput(input models.ReportInput) (models.NewReport, error) {
	if strings.TrimSpace(input.StationID) == "" {
		return models.NewReport{}, &ValidationError{Field: "station_id", Reason: "select a station"}
	}

	var prices models.FuelPrices
	fields := []struct {
		name  string
		raw   string
		value **float64
	}{
		{models.FuelPetrol, input.Petrol, &prices.Petrol},
		{models.FuelDiesel, input.Diesel, &prices.Diesel},
		{models.FuelPremiumPetrol, input.PremiumPetrol, &prices.PremiumPetrol},
		{models.FuelPremiumDiesel, input.PremiumDiesel, &prices.PremiumDiesel},
	}

	for _, field := range fields {
		raw := strings.TrimSpace(field.raw)
		if raw == "" {
			continue
		}
		value, ok := parsePrice(raw)
		if !ok {
			return models.NewReport{}, &ValidationError{Field: field.name, Reason: "enter a positive price in € per litre"}
		}
		*field.value = &value
	}

	if prices.IsEmpty() {
		return models.NewReport{}, &ValidationError{Field: "price", Reason: "enter at least one price"}
	}

	if input.Photo != nil && !strings.HasPrefix(input.Photo.ContentType, "image/") {
		return models.NewReport{}, &ValidationError{Field: "photo", Reason: "attach an image (e.g. photo of the pump or price board)"}
	}

	return models.NewReport{
		StationID: strings.TrimSpace(input.StationID),
		Prices:    prices,
		Photo:     input.Photo,
	}, nil
}

func parsePrice(raw string) (float64, bool) {
	normalised := strings.ReplaceAll(raw, ",", ".")
	value, err := strconv.ParseFloat(normalised, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value <= 0 {
		return 0, false
	}
	return value, true
}
