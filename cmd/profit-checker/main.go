package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"albion-profit-checker/internal/config"
	"albion-profit-checker/internal/database"
	"albion-profit-checker/internal/scanner"
	"albion-profit-checker/internal/services/albion"

	"github.com/joho/godotenv"
)

var (
	buyCity    = flag.String("buy-city", "", "purchase location (default from config)")
	sellMarket = flag.String("sell-market", "", "reference resale market (default from config)")
	profitMin  = flag.Float64("profit-min", -1, "minimum profit percent (default from config)")
	soldMin    = flag.Float64("sold-min", -1, "minimum average units sold per day (default from config)")
	windows    = flag.String("windows", "", "history window ladder in days, e.g. 14,30,60 (default from config)")
	catalog    = flag.String("catalog", "", "path to the base-code list (default from config)")
	workers    = flag.Int("workers", 0, "concurrent history lookups (default from config)")
	xlsxPath   = flag.String("xlsx", "", "also export the report to this .xlsx file")
	save       = flag.Bool("save", false, "cache the report in the dashboard database")
	verbose    = flag.Bool("verbose", false, "list every skipped variant with its reason")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	if *buyCity != "" {
		cfg.BuyCity = *buyCity
	}
	if *sellMarket != "" {
		cfg.SellMarket = *sellMarket
	}
	if *profitMin >= 0 {
		cfg.MinProfitPercent = *profitMin
	}
	if *soldMin >= 0 {
		cfg.MinSoldPerDay = *soldMin
	}
	if *windows != "" {
		ladder, err := parseWindows(*windows)
		if err != nil {
			log.Fatalf("Invalid -windows value: %v", err)
		}
		cfg.HistoryWindows = ladder
	}
	if *catalog != "" {
		cfg.CatalogPath = *catalog
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	client := albion.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.FreshnessDays)
	aggregator := scanner.NewAggregator(client, cfg.HistoryWindows, cfg.MinPoints, cfg.ThrottleDelay)
	generator := scanner.Generator{MinTier: cfg.MinTier, MaxTier: cfg.MaxTier, MaxEnchant: cfg.MaxEnchant}
	engine := scanner.Engine{MinProfitPercent: cfg.MinProfitPercent, MinSoldPerDay: cfg.MinSoldPerDay}

	sc, err := scanner.NewScanner(client, aggregator, generator, engine, cfg.BuyCity, cfg.SellMarket, cfg.Workers)
	if err != nil {
		log.Fatalf("Failed to build scanner: %v", err)
	}

	codes := scanner.LoadCatalog(cfg.CatalogPath)
	report, err := sc.Run(context.Background(), codes)
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	scanner.WriteReport(os.Stdout, report, cfg.MinProfitPercent)
	if *verbose {
		scanner.WriteSkips(os.Stdout, report)
	}

	if *xlsxPath != "" {
		if err := scanner.ExportXLSX(report, *xlsxPath); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Report exported to %s", *xlsxPath)
	}

	if *save {
		db, err := database.Initialize(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		if err := database.SaveReport(db, report); err != nil {
			log.Fatalf("Failed to cache report: %v", err)
		}
		log.Println("Report cached for the dashboard")
	}
}

func parseWindows(value string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
