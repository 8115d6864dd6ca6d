package models

import (
	"time"
)

// ScanRun caches one finished scan so the dashboard can serve results without
// re-running the pipeline. Aggregates themselves are recomputed every run;
// only the final report is kept.
type ScanRun struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BuyCity    string    `json:"buy_city" gorm:"not null"`
	SellMarket string    `json:"sell_market" gorm:"not null"`
	Variants   int       `json:"variants"`
	RowCount   int       `json:"row_count"`
	Skipped    int       `json:"skipped"`
	SkipDetail string    `json:"skip_detail" gorm:"type:text"` // JSON map reason -> count
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
	Rows       []ScanRow `json:"rows" gorm:"foreignKey:ScanRunID"`
}

// ScanRow is one ranked profitable variant of a cached scan.
type ScanRow struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ScanRunID     uint      `json:"scan_run_id" gorm:"index;not null"`
	Rank          int       `json:"rank"`
	ItemID        string    `json:"item_id" gorm:"not null"`
	Tier          int       `json:"tier"`
	Enchantment   int       `json:"enchantment"`
	BuyPrice      int       `json:"buy_price"`
	AvgPrice      float64   `json:"avg_price"`
	AvgSoldPerDay float64   `json:"avg_sold_per_day"`
	ProfitPercent float64   `json:"profit_percent"`
	CreatedAt     time.Time `json:"created_at"`
}
