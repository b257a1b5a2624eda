package brands

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/dublin-fuel/prices-api/internal/models"
)

// ScrapeFavicon fetches a retailer's homepage and extracts its icon link,
// resolved to an absolute URL. Pages without an explicit icon link fall
// back to /favicon.ico.
func ScrapeFavicon(client *http.Client, retailer *models.Retailer) (string, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := client.Get(retailer.Url)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch %s", retailer.Url)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close body: %v", err)
		}
	}()

	if resp.StatusCode > 299 {
		return "", errors.Newf("http status response from %s: %s", retailer.Url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse homepage")
	}

	base, err := url.Parse(retailer.Url)
	if err != nil {
		return "", errors.Wrapf(err, "invalid retailer url %s", retailer.Url)
	}

	var favicon string
	doc.Find("link[rel]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rel, _ := sel.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "icon") {
			return true
		}
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}
		if ref, err := url.Parse(href); err == nil {
			favicon = base.ResolveReference(ref).String()
			return false
		}
		return true
	})

	if favicon == "" {
		favicon = base.ResolveReference(&url.URL{Path: "/favicon.ico"}).String()
	}
	return favicon, nil
}
