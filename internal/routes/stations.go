package routes

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dublin-fuel/prices-api/internal"
	"github.com/dublin-fuel/prices-api/internal/brands"
	"github.com/dublin-fuel/prices-api/internal/catalog"
	"github.com/dublin-fuel/prices-api/internal/models"
	"github.com/dublin-fuel/prices-api/internal/stats"
)

// ListStations serves the catalog merged with the latest reports, with the
// filter/sort options the station list UI offers: area, brand, fuel type,
// free-text search, and sorting by name, area or price.
func ListStations(cat *catalog.Catalog, svc *internal.ReportService, retailers brands.Retailers) func(c *gin.Context) {
	return func(c *gin.Context) {
		sortBy := c.DefaultQuery("sort", "petrol")
		if !validSort(sortBy) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be one of name, area, petrol, diesel"})
			return
		}

		latest := svc.LatestByStation()
		views := internal.BuildStationViews(cat.All(), latest, retailers)

		views = filterViews(views, filters{
			area:  c.Query("area"),
			brand: c.Query("brand"),
			fuel:  c.Query("fuel"),
			query: strings.TrimSpace(c.Query("q")),
		})
		sortViews(views, sortBy)

		c.JSON(http.StatusOK, models.StationListResponse{
			Results:     views,
			Statistics:  stats.Derive(views),
			Attribution: internal.Attribution,
		})
	}
}

// ListAreas serves the distinct area labels for the filter dropdown.
func ListAreas(cat *catalog.Catalog) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"areas": cat.Areas(), "brands": cat.Brands()})
	}
}

type filters struct {
	area  string
	brand string
	fuel  string
	query string
}

func filterViews(views []models.StationView, f filters) []models.StationView {
	filtered := make([]models.StationView, 0, len(views))
	q := strings.ToLower(f.query)

	for _, view := range views {
		if f.area != "" && view.Area != f.area {
			continue
		}
		if f.brand != "" && view.Brand != f.brand {
			continue
		}
		if f.fuel != "" && view.Prices.ByType()[f.fuel] == nil {
			continue
		}
		if q != "" && !matchesQuery(view, q) {
			continue
		}
		filtered = append(filtered, view)
	}
	return filtered
}

func matchesQuery(view models.StationView, q string) bool {
	for _, field := range []string{view.Name, view.Address, view.Area, view.Brand} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func validSort(sortBy string) bool {
	switch sortBy {
	case "name", "area", "petrol", "diesel":
		return true
	}
	return false
}

func sortViews(views []models.StationView, sortBy string) {
	sort.SliceStable(views, func(i, j int) bool {
		switch sortBy {
		case "name":
			return views[i].Name < views[j].Name
		case "area":
			return views[i].Area < views[j].Area
		case "diesel":
			return priceOrInf(views[i].Prices.Diesel) < priceOrInf(views[j].Prices.Diesel)
		default:
			return priceOrInf(views[i].Prices.Petrol) < priceOrInf(views[j].Prices.Petrol)
		}
	})
}

// Stations with no price for the sort key go last.
func priceOrInf(price *float64) float64 {
	if price == nil {
		return 1e12
	}
	return *price
}
