package models

import (
	"strings"
	"time"
)

// PhotoLocalOnly marks a report that had a photo attached while running
// against the local fallback store, where the image itself cannot be kept.
const PhotoLocalOnly = "local"

// PriceReport is a user-submitted observation of prices at a station.
// Reports are immutable once created; corrections are new reports.
type PriceReport struct {
	ID        string `json:"id"`
	StationID string `json:"station_id"`
	FuelPrices
	// PhotoURL is nil when no photo was attached, PhotoLocalOnly when a
	// photo was attached but could not be persisted, or a resolvable URL.
	PhotoURL   *string   `json:"photo_url"`
	ReportedAt time.Time `json:"reported_at"`
}

// HasVerifiablePhoto reports whether the photo reference can actually be
// fetched for independent verification (i.e. it is a URL, not a sentinel).
func (r *PriceReport) HasVerifiablePhoto() bool {
	return r.PhotoURL != nil && strings.HasPrefix(*r.PhotoURL, "http")
}

// PhotoPayload carries an uploaded confirmation image through submission.
type PhotoPayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportInput is the raw submission as received from the user: prices are
// textual (either "." or "," accepted as decimal separator) and the photo
// is optional.
type ReportInput struct {
	StationID     string `json:"station_id"`
	Petrol        string `json:"petrol"`
	Diesel        string `json:"diesel"`
	PremiumPetrol string `json:"premium_petrol"`
	PremiumDiesel string `json:"premium_diesel"`
	Photo         *PhotoPayload `json:"-"`
}

// NewReport is a validated report ready to be written to a store.
type NewReport struct {
	StationID string
	Prices    FuelPrices
	Photo     *PhotoPayload
}
