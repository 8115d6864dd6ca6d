package main

import (
	"log"
	"net/http"

	"albion-profit-checker/internal/api"
	"albion-profit-checker/internal/config"
	"albion-profit-checker/internal/database"
	"albion-profit-checker/internal/scanner"
	"albion-profit-checker/internal/services/albion"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	client := albion.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.FreshnessDays)
	aggregator := scanner.NewAggregator(client, cfg.HistoryWindows, cfg.MinPoints, cfg.ThrottleDelay)
	generator := scanner.Generator{MinTier: cfg.MinTier, MaxTier: cfg.MaxTier, MaxEnchant: cfg.MaxEnchant}
	engine := scanner.Engine{MinProfitPercent: cfg.MinProfitPercent, MinSoldPerDay: cfg.MinSoldPerDay}

	sc, err := scanner.NewScanner(client, aggregator, generator, engine, cfg.BuyCity, cfg.SellMarket, cfg.Workers)
	if err != nil {
		log.Fatalf("Failed to build scanner: %v", err)
	}

	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Serve the dashboard build if present
	r.Static("/static", "./ui/static")
	r.GET("/", func(c *gin.Context) {
		c.File("./ui/index.html")
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	apiGroup := r.Group("/api/v1")
	handler := api.SetupRoutes(apiGroup, db, sc, cfg.CatalogPath)

	// Live progress stream
	r.GET("/ws", handler.WSProgress)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
