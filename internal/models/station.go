package models

// FuelType tags for the four price columns tracked per station.
const (
	FuelPetrol        = "petrol"
	FuelDiesel        = "diesel"
	FuelPremiumPetrol = "premium_petrol"
	FuelPremiumDiesel = "premium_diesel"
)

// FuelTypes lists the tracked fuel types in display order.
var FuelTypes = []string{FuelPetrol, FuelDiesel, FuelPremiumPetrol, FuelPremiumDiesel}

// FuelPrices holds optional prices in € per litre. A nil field means the
// price is unknown, never zero.
type FuelPrices struct {
	Petrol        *float64 `json:"petrol,omitempty"`
	Diesel        *float64 `json:"diesel,omitempty"`
	PremiumPetrol *float64 `json:"premium_petrol,omitempty"`
	PremiumDiesel *float64 `json:"premium_diesel,omitempty"`
}

// ByType returns the prices keyed by fuel type tag.
func (p *FuelPrices) ByType() map[string]*float64 {
	return map[string]*float64{
		FuelPetrol:        p.Petrol,
		FuelDiesel:        p.Diesel,
		FuelPremiumPetrol: p.PremiumPetrol,
		FuelPremiumDiesel: p.PremiumDiesel,
	}
}

// IsEmpty reports whether no price is set at all.
func (p *FuelPrices) IsEmpty() bool {
	return p.Petrol == nil && p.Diesel == nil && p.PremiumPetrol == nil && p.PremiumDiesel == nil
}

// Station is a fixed catalog entry for a fuel retailer location. The catalog
// is loaded once at startup and never mutated.
type Station struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Address     string     `json:"address"`
	Area        string     `json:"area"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Prices      FuelPrices `json:"prices"`
	LastUpdated string     `json:"last_updated"`
}
