package internal

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PhotoBucket is the Supabase storage bucket holding confirmation photos,
// keyed by {station_id}/{generated_id}.{ext}.
const PhotoBucket = "price-confirmation-photos"

const reportsTable = "price_reports"

// priceReportRow mirrors the price_reports table. Timestamps stay textual
// at the wire boundary and are validated when converting to the model.
type priceReportRow struct {
	ID            string   `json:"id,omitempty"`
	StationID     string   `json:"station_id"`
	Petrol        *float64 `json:"petrol,omitempty"`
	Diesel        *float64 `json:"diesel,omitempty"`
	PremiumPetrol *float64 `json:"premium_petrol,omitempty"`
	PremiumDiesel *float64 `json:"premium_diesel,omitempty"`
	PhotoURL      *string  `json:"photo_url"`
	ReportedAt    string   `json:"reported_at,omitempty"`
}

type supabaseErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SupabaseClient talks to the hosted backend over its REST and storage
// endpoints. It is constructed once at startup and injected; there is no
// package-level singleton.
type SupabaseClient struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewSupabaseClient(cfg Config) *SupabaseClient {
	return &SupabaseClient{
		baseURL: cfg.SupabaseURL,
		anonKey: cfg.SupabaseAnonKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// InsertReport writes a report row and echoes back the representation with
// the server-assigned id and reported_at.
func (c *SupabaseClient) InsertReport(row priceReportRow) (priceReportRow, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return priceReportRow{}, errors.Wrap(err, "failed to marshal report row")
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, reportsTable)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return priceReportRow{}, errors.Wrap(err, "failed to create request")
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	body, err := c.do(req, "insert report")
	if err != nil {
		return priceReportRow{}, err
	}
	defer closeBody(body)

	// PostgREST returns the representation as a single-element array.
	var inserted []priceReportRow
	if err := json.NewDecoder(body).Decode(&inserted); err != nil {
		return priceReportRow{}, errors.Wrap(err, "failed to decode insert response")
	}
	if len(inserted) == 0 {
		return priceReportRow{}, errors.New("insert returned no representation")
	}
	return inserted[0], nil
}

// ListReports fetches every report row, newest first. The server guarantees
// the ordering via the order parameter; callers still re-sort defensively.
func (c *SupabaseClient) ListReports() ([]priceReportRow, error) {
	url := fmt.Sprintf("%s/rest/v1/%s?select=*&order=reported_at.desc", c.baseURL, reportsTable)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	c.authorize(req)

	body, err := c.do(req, "list reports")
	if err != nil {
		return nil, err
	}
	defer closeBody(body)

	var rows []priceReportRow
	if err := json.NewDecoder(body).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode report rows")
	}
	return rows, nil
}

// UploadPhoto stores an object in the photo bucket. No upsert: paths embed a
// fresh uuid so collisions should not occur.
func (c *SupabaseClient) UploadPhoto(path, contentType string, data []byte) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, PhotoBucket, path)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	c.authorize(req)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	body, err := c.do(req, "upload photo")
	if err != nil {
		return err
	}
	closeBody(body)
	return nil
}

// PublicURL returns the public object URL for a storage path.
func (c *SupabaseClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, PhotoBucket, path)
}

// CreateSignedURL requests a time-limited download URL for a storage path.
func (c *SupabaseClient) CreateSignedURL(path string, expirySeconds int) (string, error) {
	payload, err := json.Marshal(map[string]int{"expiresIn": expirySeconds})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal sign request")
	}

	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, PhotoBucket, path)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, "sign photo url")
	if err != nil {
		return "", err
	}
	defer closeBody(body)

	var resp struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return "", errors.Wrap(err, "failed to decode sign response")
	}
	if resp.SignedURL == "" {
		return "", errors.New("sign response contained no URL")
	}
	return c.baseURL + "/storage/v1" + resp.SignedURL, nil
}

// Ping checks that the REST endpoint is reachable with the configured key.
func (c *SupabaseClient) Ping() bool {
	url := fmt.Sprintf("%s/rest/v1/%s?select=id&limit=1", c.baseURL, reportsTable)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < 300
}

func (c *SupabaseClient) authorize(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Accept", "application/json")
}

// do performs the request and converts non-2xx responses into StorageErrors
// carrying the backend's own message.
func (c *SupabaseClient) do(req *http.Request, op string) (io.ReadCloser, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &StorageError{Op: op, Message: err.Error()}
	}

	if resp.StatusCode > 299 {
		defer closeBody(resp.Body)
		message := resp.Status
		var backendErr supabaseErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&backendErr); decodeErr == nil {
			if backendErr.Message != "" {
				message = backendErr.Message
			} else if backendErr.Error != "" {
				message = backendErr.Error
			}
		}
		return nil, &StorageError{Op: op, Message: message, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		log.Printf("failed to close body: %v", err)
	}
}

// parseReportedAt accepts the timestamp formats Supabase emits; the exact
// shape varies with column precision.
func parseReportedAt(raw string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02 15:04:05.999999-07",
	} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Newf("unrecognised timestamp: %q", raw)
}
