package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/aurowora/compress"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dublin-fuel/prices-api/internal"
	"github.com/dublin-fuel/prices-api/internal/brands"
	"github.com/dublin-fuel/prices-api/internal/routes"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func ApiServer(dbPath string, port int, debug bool) error {

	svc, cat, resolver, store, err := bootstrap(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("failed to close report store: %v", err)
		}
	}()

	retailers, err := brands.GetRetailersMap()
	if err != nil {
		return fmt.Errorf("failed to load retailers: %w", err)
	}

	internal.RefreshMetrics(svc, cat.All())
	if _, err := internal.StartCron(svc, cat.All()); err != nil {
		return fmt.Errorf("failed to start CRON jobs: %w", err)
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
		compress.Compress(),
		cors.Default(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err = healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{
		svc.Check(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize healthcheck: %v", err)
	}

	refresh := func() {
		internal.RefreshMetrics(svc, cat.All())
	}

	v1 := r.Group("/v1/fuel-prices")
	v1.GET("/stations", routes.ListStations(cat, svc, retailers))
	v1.GET("/filters", routes.ListAreas(cat))
	v1.GET("/reports/latest", routes.LatestReports(svc))
	v1.POST("/reports", routes.SubmitReport(svc, refresh))
	v1.GET("/photo-url", routes.PhotoDisplayURL(resolver))

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %v", port, err)
	}

	return nil
}
