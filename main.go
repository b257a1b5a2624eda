package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/dublin-fuel/prices-api/cmd"
)

func main() {
	var dbPath string
	var port int
	var debug bool
	var faviconsOut string

	rootCmd := &cobra.Command{
		Use:   "dublin-fuel-api",
		Short: "Community-reported fuel prices for the Dublin area",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(dbPath, port, debug)
		},
	}
	serveCmd.Flags().StringVar(&dbPath, "db", "data/reports.db", "path to the fallback sqlite database")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "expose pprof endpoints")

	faviconsCmd := &cobra.Command{
		Use:   "favicons",
		Short: "Refresh retailer favicons by scraping brand homepages",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Favicons(faviconsOut)
		},
	}
	faviconsCmd.Flags().StringVar(&faviconsOut, "out", "", "write the updated CSV here instead of stdout")

	rootCmd.AddCommand(serveCmd, faviconsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
