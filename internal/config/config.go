package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Market locations
	APIBaseURL string
	BuyCity    string // where we buy
	SellMarket string // reference resale market

	// Variant generation ranges
	MinTier    int
	MaxTier    int
	MaxEnchant int

	// Price acquisition
	FreshnessDays  int           // max age of a quote still trusted for min-price selection
	HistoryWindows []int         // fallback ladder, days, ascending
	MinPoints      int           // minimum qualifying history points per window
	ThrottleDelay  time.Duration // pause between ladder steps
	RequestTimeout time.Duration

	// Admission thresholds
	MinProfitPercent float64
	MinSoldPerDay    float64

	// Pipeline
	Workers     int
	CatalogPath string

	// Dashboard
	DatabaseURL string
	Port        string
}

func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("ALBION_API_URL", "https://west.albion-online-data.com"),
		BuyCity:    getEnv("BUY_CITY", "Lymhurst"),
		SellMarket: getEnv("SELL_MARKET", "Black Market"),

		MinTier:    getEnvInt("MIN_TIER", 4),
		MaxTier:    getEnvInt("MAX_TIER", 8),
		MaxEnchant: getEnvInt("MAX_ENCHANT", 3),

		FreshnessDays:  getEnvInt("FRESHNESS_DAYS", 90),
		HistoryWindows: getEnvInts("HISTORY_WINDOWS", []int{14, 30, 60}),
		MinPoints:      getEnvInt("MIN_HISTORY_POINTS", 1),
		ThrottleDelay:  getEnvDuration("THROTTLE_DELAY", 2*time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 20*time.Second),

		MinProfitPercent: getEnvFloat("MIN_PROFIT_PERCENT", 10.0),
		MinSoldPerDay:    getEnvFloat("MIN_SOLD_PER_DAY", 0.1),

		Workers:     getEnvInt("SCAN_WORKERS", 4),
		CatalogPath: getEnv("CATALOG_PATH", "items.txt"),

		DatabaseURL: getEnv("DATABASE_URL", "profit_checker.db"),
		Port:        getEnv("PORT", "8080"),
	}
}

// Validate reports configuration faults that must stop the run before any fetch.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL must not be empty")
	}
	if c.BuyCity == "" || c.SellMarket == "" {
		return fmt.Errorf("both buy city and sell market must be set")
	}
	if c.MinTier > c.MaxTier {
		return fmt.Errorf("invalid tier range: min %d > max %d", c.MinTier, c.MaxTier)
	}
	if c.MaxEnchant < 0 {
		return fmt.Errorf("invalid enchantment range: max %d < 0", c.MaxEnchant)
	}
	if len(c.HistoryWindows) == 0 {
		return fmt.Errorf("history window ladder must not be empty")
	}
	for i, w := range c.HistoryWindows {
		if w <= 0 {
			return fmt.Errorf("history window must be positive, got %d", w)
		}
		if i > 0 && w <= c.HistoryWindows[i-1] {
			return fmt.Errorf("history windows must be strictly ascending, got %v", c.HistoryWindows)
		}
	}
	if c.MinPoints < 1 {
		return fmt.Errorf("minimum history points must be at least 1, got %d", c.MinPoints)
	}
	if c.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Workers)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvInts parses a comma-separated list, e.g. HISTORY_WINDOWS=14,30,60.
func getEnvInts(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	return out
}
