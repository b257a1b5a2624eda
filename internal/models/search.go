package models

import "time"

// StationView is a catalog entry merged with its latest report: the report's
// price set entirely replaces the baseline when one exists.
type StationView struct {
	Station
	Prices       FuelPrices `json:"prices"`
	Reported     bool       `json:"reported"`
	ReportedAt   *time.Time `json:"reported_at,omitempty"`
	LastReported string     `json:"last_reported,omitempty"`
	PhotoURL     *string    `json:"photo_url,omitempty"`
	UnusualPrice bool       `json:"unusual_price,omitempty"`
	Retailer     *Retailer  `json:"retailer,omitempty"`
}

// PriceStatistics summarises the merged view per fuel type.
type PriceStatistics struct {
	CheapestStations  map[string][]string `json:"cheapest_stations"`
	LowestPrice       map[string]float64  `json:"lowest_price"`
	AveragePrice      map[string]float64  `json:"average_price"`
	HighestPrice      map[string]float64  `json:"highest_price"`
	StandardDeviation map[string]float64  `json:"standard_deviation"`
	BrandDistribution map[string]int      `json:"brand_distribution"`
}

type StationListResponse struct {
	Results     []StationView    `json:"results"`
	Statistics  *PriceStatistics `json:"statistics"`
	Attribution []string         `json:"attribution"`
}

// SubmitResponse wraps a created report with the advisory outlier flag; the
// flag never blocks anything, it only nudges the submitter to add a photo.
type SubmitResponse struct {
	Report  PriceReport `json:"report"`
	Unusual bool        `json:"unusual"`
}
