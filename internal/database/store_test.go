package database

import (
	"path/filepath"
	"testing"
	"time"

	"albion-profit-checker/internal/scanner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadReport(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	_, err = LatestRun(db)
	assert.True(t, IsNotFound(err))

	report := &scanner.Report{
		BuyCity:    "Lymhurst",
		SellMarket: "Black Market",
		Variants:   2,
		Rows: []scanner.ProfitRow{
			{ItemID: "T5_BAG", Tier: 5, BuyPrice: 1000, AvgPrice: 1500, AvgSoldPerDay: 2, ProfitPercent: 50},
			{ItemID: "T4_BAG", Tier: 4, BuyPrice: 1000, AvgPrice: 1200, AvgSoldPerDay: 1, ProfitPercent: 20},
		},
		Skips:     []scanner.Skip{{Reason: scanner.SkipNoBuyQuote}},
		StartedAt: time.Now(),
		Duration:  4 * time.Second,
	}
	require.NoError(t, SaveReport(db, report))

	run, err := LatestRun(db)
	require.NoError(t, err)
	assert.Equal(t, "Lymhurst", run.BuyCity)
	assert.Equal(t, 2, run.RowCount)
	assert.Equal(t, 1, run.Skipped)
	assert.Contains(t, run.SkipDetail, string(scanner.SkipNoBuyQuote))

	require.Len(t, run.Rows, 2)
	assert.Equal(t, "T5_BAG", run.Rows[0].ItemID, "rows come back in rank order")
	assert.Equal(t, 1, run.Rows[0].Rank)
	assert.Equal(t, "T4_BAG", run.Rows[1].ItemID)
}

func TestLatestRunPicksNewest(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	older := &scanner.Report{BuyCity: "Lymhurst", SellMarket: "Black Market", StartedAt: time.Now().Add(-time.Hour)}
	newer := &scanner.Report{BuyCity: "Martlock", SellMarket: "Black Market", StartedAt: time.Now()}
	require.NoError(t, SaveReport(db, older))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, SaveReport(db, newer))

	run, err := LatestRun(db)
	require.NoError(t, err)
	assert.Equal(t, "Martlock", run.BuyCity)
}
