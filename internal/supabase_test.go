package internal

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublin-fuel/prices-api/internal/models"
)

// fakeSupabase stands in for the hosted backend: enough of the PostgREST
// and storage surface to exercise the client and the remote store.
type fakeSupabase struct {
	mux *http.ServeMux

	insertedRows  []string
	uploadedPaths []string
	failUpload    bool
	failList      bool
}

func newFakeSupabase(t *testing.T) (*fakeSupabase, *SupabaseClient) {
	fake := &fakeSupabase{mux: http.NewServeMux()}

	fake.mux.HandleFunc("POST /rest/v1/price_reports", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		fake.insertedRows = append(fake.insertedRows, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"srv-1","station_id":"42","petrol":1.699,"photo_url":null,"reported_at":"2026-08-30T10:15:00.123456+00:00"}]`))
	})

	fake.mux.HandleFunc("GET /rest/v1/price_reports", func(w http.ResponseWriter, r *http.Request) {
		if fake.failList {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"message":"maintenance"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"r2","station_id":"42","diesel":1.589,"photo_url":null,"reported_at":"2026-08-30T11:00:00+00:00"},
			{"id":"r1","station_id":"42","petrol":1.699,"photo_url":null,"reported_at":"2026-08-30T10:00:00+00:00"}
		]`))
	})

	fake.mux.HandleFunc("POST /storage/v1/object/", func(w http.ResponseWriter, r *http.Request) {
		if fake.failUpload {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"new row violates row-level security policy"}`))
			return
		}
		fake.uploadedPaths = append(fake.uploadedPaths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"ok"}`))
	})

	fake.mux.HandleFunc("POST /storage/v1/object/sign/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"signedURL":"/object/sign/price-confirmation-photos/42/abc.jpg?token=tkn"}`))
	})

	server := httptest.NewServer(fake.mux)
	t.Cleanup(server.Close)

	client := NewSupabaseClient(Config{SupabaseURL: server.URL, SupabaseAnonKey: "anon-key"})
	return fake, client
}

func TestRemoteStoreInsertWithoutPhoto(t *testing.T) {
	fake, client := newFakeSupabase(t)
	store := NewRemoteStore(client)

	report, err := store.Insert(models.NewReport{
		StationID: "42",
		Prices:    models.FuelPrices{Petrol: price(1.699)},
	})
	require.NoError(t, err)

	// Server-assigned identity is echoed back.
	assert.Equal(t, "srv-1", report.ID)
	assert.Equal(t, "42", report.StationID)
	assert.Equal(t, 1.699, *report.Petrol)
	assert.Nil(t, report.Diesel)
	assert.Nil(t, report.PhotoURL)
	assert.Equal(t, 2026, report.ReportedAt.Year())

	require.Len(t, fake.insertedRows, 1)
	assert.NotContains(t, fake.insertedRows[0], `"diesel"`, "absent prices are omitted, not zeroed")
	assert.Empty(t, fake.uploadedPaths)
}

func TestRemoteStoreInsertWithPhoto(t *testing.T) {
	fake, client := newFakeSupabase(t)
	store := NewRemoteStore(client)

	_, err := store.Insert(models.NewReport{
		StationID: "42",
		Prices:    models.FuelPrices{Petrol: price(1.699)},
		Photo:     &models.PhotoPayload{Filename: "board.png", ContentType: "image/png", Data: []byte("img")},
	})
	require.NoError(t, err)

	require.Len(t, fake.uploadedPaths, 1)
	assert.Regexp(t, `^/storage/v1/object/price-confirmation-photos/42/[0-9a-f-]{36}\.png$`, fake.uploadedPaths[0])

	require.Len(t, fake.insertedRows, 1)
	assert.Contains(t, fake.insertedRows[0], "/storage/v1/object/public/price-confirmation-photos/42/")
}

func TestRemoteStoreUploadFailureWritesNoRow(t *testing.T) {
	fake, client := newFakeSupabase(t)
	fake.failUpload = true
	store := NewRemoteStore(client)

	_, err := store.Insert(models.NewReport{
		StationID: "42",
		Prices:    models.FuelPrices{Petrol: price(1.699)},
		Photo:     &models.PhotoPayload{Filename: "board.jpg", ContentType: "image/jpeg", Data: []byte("img")},
	})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Contains(t, storageErr.Message, "row-level security")
	assert.Empty(t, fake.insertedRows, "report row must never be written after a failed upload")
}

func TestRemoteStoreListAll(t *testing.T) {
	_, client := newFakeSupabase(t)
	store := NewRemoteStore(client)

	reports, err := store.ListAll()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID)
	assert.True(t, reports[0].ReportedAt.After(reports[1].ReportedAt))
}

func TestRemoteStoreListFailureIsQueryError(t *testing.T) {
	fake, client := newFakeSupabase(t)
	fake.failList = true
	store := NewRemoteStore(client)

	_, err := store.ListAll()
	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)

	// And the service layer swallows it.
	latest := NewReportService(store, knownStations()).LatestByStation()
	assert.Empty(t, latest)
}

func TestCreateSignedURL(t *testing.T) {
	_, client := newFakeSupabase(t)

	signed, err := client.CreateSignedURL("42/abc.jpg", 3600)
	require.NoError(t, err)
	assert.Contains(t, signed, "/storage/v1/object/sign/price-confirmation-photos/42/abc.jpg?token=tkn")
	assert.Contains(t, signed, "http://127.0.0.1")
}

func TestParseReportedAt(t *testing.T) {
	for _, raw := range []string{
		"2026-08-30T10:15:00.123456+00:00",
		"2026-08-30T10:15:00Z",
		"2026-08-30T10:15:00.123456",
	} {
		ts, err := parseReportedAt(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, time.August, ts.Month())
	}

	_, err := parseReportedAt("yesterday")
	assert.Error(t, err)
}
