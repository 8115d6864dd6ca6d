package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrices quotes a fixed buy price for every requested id.
type fakePrices struct {
	price int
	calls int
}

func (f *fakePrices) BulkCurrentPrices(_ context.Context, itemIDs []string, _ string) map[string]PriceQuote {
	f.calls++
	quotes := make(map[string]PriceQuote, len(itemIDs))
	for _, id := range itemIDs {
		quotes[id] = PriceQuote{Price: f.price}
	}
	return quotes
}

// steadyHistory serves the same liquid window for every item.
type steadyHistory struct {
	avgPrice float64
}

func (s steadyHistory) History(_ context.Context, _, _ string, _ int) []HistoryPoint {
	now := time.Now().UTC()
	return []HistoryPoint{
		{Timestamp: now.AddDate(0, 0, -1), AvgPrice: s.avgPrice, UnitsSold: 3},
		{Timestamp: now.AddDate(0, 0, -2), AvgPrice: s.avgPrice, UnitsSold: 3},
	}
}

func newTestScanner(t *testing.T, prices PriceSource, fetcher HistoryFetcher, workers int) *Scanner {
	t.Helper()
	agg := NewAggregator(fetcher, []int{14, 30}, 1, 0)
	agg.sleep = func(time.Duration) {}

	sc, err := NewScanner(
		prices,
		agg,
		Generator{MinTier: 4, MaxTier: 8, MaxEnchant: 3},
		Engine{MinProfitPercent: 10, MinSoldPerDay: 0.1},
		"Lymhurst", "Black Market", workers,
	)
	require.NoError(t, err)
	return sc
}

func TestScannerRun(t *testing.T) {
	prices := &fakePrices{price: 100}
	sc := newTestScanner(t, prices, steadyHistory{avgPrice: 150}, 3)

	report, err := sc.Run(context.Background(), []string{"BAG"})
	require.NoError(t, err)

	assert.Equal(t, 20, report.Variants)
	assert.Len(t, report.Rows, 20, "every variant is 50%% profitable")
	assert.Empty(t, report.Skips)
	assert.Equal(t, 1, prices.calls, "one batched quote request per run")

	progress := sc.Progress()
	assert.False(t, progress.Running)
	assert.Equal(t, 20, progress.Total)
	assert.Equal(t, 20, progress.Done)
}

func TestScannerRankingIndependentOfWorkerCount(t *testing.T) {
	run := func(workers int) *Report {
		sc := newTestScanner(t, &fakePrices{price: 100}, steadyHistory{avgPrice: 150}, workers)
		report, err := sc.Run(context.Background(), []string{"BAG", "CAPE"})
		require.NoError(t, err)
		return report
	}

	sequential := run(1)
	concurrent := run(8)
	assert.Equal(t, sequential.Rows, concurrent.Rows)
}

func TestScannerDegradesWithoutData(t *testing.T) {
	// remote has nothing: every variant must surface as a named skip
	sc := newTestScanner(t, &fakePrices{price: 0}, &fakeFetcher{}, 2)

	report, err := sc.Run(context.Background(), []string{"BAG"})
	require.NoError(t, err)

	assert.Empty(t, report.Rows)
	require.Len(t, report.Skips, 20)
	counts := CountSkips(report.Skips)
	assert.Equal(t, 20, counts[SkipNoBuyQuote])
}

func TestScannerEmptyBaseCodes(t *testing.T) {
	sc := newTestScanner(t, &fakePrices{price: 100}, steadyHistory{avgPrice: 150}, 1)

	_, err := sc.Run(context.Background(), nil)
	require.Error(t, err)
}

func TestScannerRejectsInvalidGenerator(t *testing.T) {
	agg := NewAggregator(&fakeFetcher{}, []int{14}, 1, 0)
	_, err := NewScanner(&fakePrices{}, agg, Generator{MinTier: 9, MaxTier: 4}, Engine{}, "Lymhurst", "Black Market", 2)
	require.Error(t, err)
}
