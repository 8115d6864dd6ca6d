package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"albion-profit-checker/internal/models"
	"albion-profit-checker/internal/scanner"

	"gorm.io/gorm"
)

// SaveReport caches one finished scan for the dashboard.
func SaveReport(db *gorm.DB, report *scanner.Report) error {
	detail, err := json.Marshal(scanner.CountSkips(report.Skips))
	if err != nil {
		return fmt.Errorf("failed to encode skip detail: %w", err)
	}

	run := models.ScanRun{
		BuyCity:    report.BuyCity,
		SellMarket: report.SellMarket,
		Variants:   report.Variants,
		RowCount:   len(report.Rows),
		Skipped:    len(report.Skips),
		SkipDetail: string(detail),
		StartedAt:  report.StartedAt,
		DurationMs: report.Duration.Milliseconds(),
	}
	for i, row := range report.Rows {
		run.Rows = append(run.Rows, models.ScanRow{
			Rank:          i + 1,
			ItemID:        row.ItemID,
			Tier:          row.Tier,
			Enchantment:   row.Enchantment,
			BuyPrice:      row.BuyPrice,
			AvgPrice:      row.AvgPrice,
			AvgSoldPerDay: row.AvgSoldPerDay,
			ProfitPercent: row.ProfitPercent,
		})
	}

	if err := db.Create(&run).Error; err != nil {
		return fmt.Errorf("failed to save scan run: %w", err)
	}
	return nil
}

// LatestRun loads the newest cached scan with its rows in rank order.
func LatestRun(db *gorm.DB) (*models.ScanRun, error) {
	var run models.ScanRun
	err := db.Preload("Rows", func(db *gorm.DB) *gorm.DB {
		return db.Order("rank ASC")
	}).Order("created_at DESC").First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// IsNotFound reports whether err means no scan has been cached yet.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
