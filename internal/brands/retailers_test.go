package brands

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublin-fuel/prices-api/internal/models"
)

func TestGetRetailersList(t *testing.T) {
	retailers, err := GetRetailersList()
	require.NoError(t, err)
	require.NotEmpty(t, retailers)

	for _, retailer := range retailers {
		assert.NotEmpty(t, retailer.Name)
		assert.Contains(t, retailer.Url, "http")
	}
}

func TestGetRetailersMap(t *testing.T) {
	m, err := GetRetailersMap()
	require.NoError(t, err)
	require.Contains(t, m, "Circle K")
	assert.Equal(t, "Circle K", m["Circle K"].Name)
}

func TestScrapeFavicon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
			<link rel="stylesheet" href="/style.css">
			<link rel="shortcut icon" href="/assets/icon.png">
		</head></html>`))
	}))
	defer server.Close()

	client := &http.Client{Timeout: time.Second}
	favicon, err := ScrapeFavicon(client, &models.Retailer{Name: "Test", Url: server.URL})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/assets/icon.png", favicon)
}

func TestScrapeFaviconFallsBackToWellKnownPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>no icons here</title></head></html>`))
	}))
	defer server.Close()

	favicon, err := ScrapeFavicon(nil, &models.Retailer{Name: "Test", Url: server.URL})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/favicon.ico", favicon)
}
