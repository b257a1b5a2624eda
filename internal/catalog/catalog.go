// Package catalog holds the static Dublin station dataset. It is bundled
// into the binary and read-only at runtime: crowd-sourced reports layer on
// top of it, they never modify it.
package catalog

import (
	_ "embed"
	"sort"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"

	"github.com/dublin-fuel/prices-api/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed stations.json
var stationsJSON []byte

type Catalog struct {
	stations []models.Station
	byID     map[string]models.Station
}

// Load parses the embedded dataset once at startup.
func Load() (*Catalog, error) {
	var stations []models.Station
	if err := json.Unmarshal(stationsJSON, &stations); err != nil {
		return nil, errors.Wrap(err, "failed to parse station catalog")
	}

	byID := make(map[string]models.Station, len(stations))
	for _, station := range stations {
		if station.ID == "" {
			return nil, errors.Newf("station %q has no id", station.Name)
		}
		if _, ok := byID[station.ID]; ok {
			return nil, errors.Newf("duplicate station id: %s", station.ID)
		}
		byID[station.ID] = station
	}

	return &Catalog{stations: stations, byID: byID}, nil
}

// All returns the stations in catalog order. Callers must not mutate the
// returned slice.
func (c *Catalog) All() []models.Station {
	return c.stations
}

// Get looks a station up by id.
func (c *Catalog) Get(id string) (models.Station, bool) {
	station, ok := c.byID[id]
	return station, ok
}

// Has reports whether a station with the given id exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Areas returns the distinct area labels, sorted.
func (c *Catalog) Areas() []string {
	return distinct(c.stations, func(s models.Station) string { return s.Area })
}

// Brands returns the distinct brand names, sorted.
func (c *Catalog) Brands() []string {
	return distinct(c.stations, func(s models.Station) string { return s.Brand })
}

func distinct(stations []models.Station, key func(models.Station) string) []string {
	seen := make(map[string]struct{}, len(stations))
	var values []string
	for _, station := range stations {
		k := key(station)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}
