package cmd

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/rm-hull/godx"

	"github.com/dublin-fuel/prices-api/internal"
	"github.com/dublin-fuel/prices-api/internal/catalog"
)

// bootstrap initialises shared resources for the API server: the station
// catalog, the report store (remote when Supabase credentials are present,
// otherwise the sqlite fallback), and the photo resolver.
func bootstrap(dbPath string) (*internal.ReportService, *catalog.Catalog, *internal.PhotoResolver, internal.ReportStore, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	godx.GitVersion()
	godx.EnvironmentVars()
	godx.UserInfo()

	cat, err := catalog.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load station catalog: %w", err)
	}

	cfg := internal.ConfigFromEnv()

	var store internal.ReportStore
	var resolver *internal.PhotoResolver

	if cfg.Configured() {
		client := internal.NewSupabaseClient(cfg)
		store = internal.NewRemoteStore(client)
		resolver = internal.NewPhotoResolver(client)
		log.Printf("using remote report store: %s", cfg.SupabaseURL)
	} else {
		db, err := internal.Connect(dbPath)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to initialize fallback database: %w", err)
		}
		if err := internal.Migrate(dbPath); err != nil {
			_ = db.Close()
			return nil, nil, nil, nil, fmt.Errorf("failed to migrate fallback database: %w", err)
		}
		store = internal.NewLocalStore(db)
		resolver = internal.NewPhotoResolver(nil)
		log.Println("Supabase not configured; reports are stored locally and photos are not persisted")
	}

	return internal.NewReportService(store, cat.Has), cat, resolver, store, nil
}
