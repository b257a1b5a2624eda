package cmd

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dublin-fuel/prices-api/internal/brands"
)

// Favicons refreshes each retailer's favicon by scraping its homepage, then
// writes the updated CSV to outPath (or stdout when empty). The result is
// meant to be committed back as internal/brands/retailers.csv.
func Favicons(outPath string) error {
	retailers, err := brands.GetRetailersList()
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	for _, retailer := range retailers {
		favicon, err := brands.ScrapeFavicon(client, retailer)
		if err != nil {
			log.Printf("keeping existing favicon for %s: %v", retailer.Name, err)
			continue
		}
		retailer.Favicon = &favicon
		log.Printf("%s -> %s", retailer.Name, favicon)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("failed to close %s: %v", outPath, err)
			}
		}()
		out = f
	}

	writer := csv.NewWriter(out)
	for _, retailer := range retailers {
		if err := writer.Write(retailer.ToCSV()); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
