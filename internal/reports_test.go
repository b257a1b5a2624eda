package internal

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/dublin-fuel/prices-api/internal/models"
)

// fakeStore records inserts so tests can assert which calls reached the
// storage layer.
type fakeStore struct {
	inserts []models.NewReport
	reports []models.PriceReport
	listErr error
}

func (s *fakeStore) Insert(report models.NewReport) (models.PriceReport, error) {
	s.inserts = append(s.inserts, report)
	return models.PriceReport{
		ID:         "fake-id",
		StationID:  report.StationID,
		FuelPrices: report.Prices,
		ReportedAt: time.Now().UTC(),
	}, nil
}

func (s *fakeStore) ListAll() ([]models.PriceReport, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.reports, nil
}

func (s *fakeStore) Check() checks.Check { return nil }
func (s *fakeStore) Close() error        { return nil }

func knownStations(ids ...string) StationLookup {
	return func(id string) bool {
		for _, known := range ids {
			if id == known {
				return true
			}
		}
		return false
	}
}

func TestValidateReportInput(t *testing.T) {
	t.Run("missing station id", func(t *testing.T) {
		_, err := ValidateReportInput(models.ReportInput{Petrol: "1.699"})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "station_id", validationErr.Field)
	})

	t.Run("no prices at all", func(t *testing.T) {
		_, err := ValidateReportInput(models.ReportInput{StationID: "42"})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "price", validationErr.Field)
	})

	t.Run("unparsable price names the field", func(t *testing.T) {
		_, err := ValidateReportInput(models.ReportInput{StationID: "42", Diesel: "cheap"})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "diesel", validationErr.Field)
	})

	t.Run("zero and negative prices are rejected", func(t *testing.T) {
		for _, raw := range []string{"0", "-1.50"} {
			_, err := ValidateReportInput(models.ReportInput{StationID: "42", Petrol: raw})
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr, "input %q", raw)
		}
	})

	t.Run("comma decimal separator is normalised", func(t *testing.T) {
		report, err := ValidateReportInput(models.ReportInput{StationID: "42", Petrol: "1,699"})
		require.NoError(t, err)
		assert.Equal(t, 1.699, *report.Prices.Petrol)
	})

	t.Run("single price leaves the rest unknown", func(t *testing.T) {
		report, err := ValidateReportInput(models.ReportInput{StationID: "42", Petrol: "1.699"})
		require.NoError(t, err)
		assert.Equal(t, 1.699, *report.Prices.Petrol)
		assert.Nil(t, report.Prices.Diesel)
		assert.Nil(t, report.Prices.PremiumPetrol)
		assert.Nil(t, report.Prices.PremiumDiesel)
		assert.Nil(t, report.Photo)
	})

	t.Run("non-image photo rejected", func(t *testing.T) {
		_, err := ValidateReportInput(models.ReportInput{
			StationID: "42",
			Petrol:    "1.699",
			Photo:     &models.PhotoPayload{Filename: "notes.pdf", ContentType: "application/pdf"},
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "photo", validationErr.Field)
	})
}

func TestSubmitNeverReachesStoreOnValidationFailure(t *testing.T) {
	store := &fakeStore{}
	svc := NewReportService(store, knownStations("42"))

	_, err := svc.Submit(models.ReportInput{StationID: "42", Petrol: "n/a", Diesel: ""})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, store.inserts)
}

func TestSubmitRejectsUnknownStation(t *testing.T) {
	store := &fakeStore{}
	svc := NewReportService(store, knownStations("42"))

	_, err := svc.Submit(models.ReportInput{StationID: "no-such-station", Petrol: "1.699"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "station_id", validationErr.Field)
	assert.Empty(t, store.inserts)
}

func TestSubmitWritesValidatedReport(t *testing.T) {
	store := &fakeStore{}
	svc := NewReportService(store, knownStations("42"))

	report, err := svc.Submit(models.ReportInput{StationID: "42", Petrol: "1.699"})
	require.NoError(t, err)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, "42", report.StationID)
	assert.Equal(t, 1.699, *report.Petrol)
	assert.Nil(t, report.PhotoURL)
}

func TestLatestByStationFailsOpen(t *testing.T) {
	store := &fakeStore{listErr: errors.New("backend down")}
	svc := NewReportService(store, knownStations())

	latest := svc.LatestByStation()
	assert.NotNil(t, latest)
	assert.Empty(t, latest)
}
