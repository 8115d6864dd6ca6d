package scanner

import "time"

// Variant identifies one tradeable good at one tier/enchantment combination.
type Variant struct {
	ItemID      string
	BaseCode    string
	Tier        int
	Enchantment int
}

// PriceQuote is a current sell-side price observation at one location.
// A zero ObservedAt means the source omitted the date.
type PriceQuote struct {
	Price      int
	ObservedAt time.Time
}

// Valid reports whether the quote carries a usable price signal.
func (q PriceQuote) Valid() bool {
	return q.Price > 0
}

// HistoryPoint is one daily historical sample for one variant.
type HistoryPoint struct {
	Timestamp time.Time
	AvgPrice  float64
	UnitsSold int
}

// Aggregate is the reduction of a set of history points. A zero value
// (WindowDays == 0) signals insufficient market activity, not an error.
type Aggregate struct {
	AvgPrice      float64
	AvgSoldPerDay float64
	WindowDays    int
	PointsUsed    int
}

// ProfitRow is a fully evaluated candidate that passed all admission filters.
type ProfitRow struct {
	ItemID        string
	Tier          int
	Enchantment   int
	BuyPrice      int
	BuyDate       time.Time
	AvgPrice      float64
	AvgSoldPerDay float64
	ProfitPercent float64
}

// SkipReason names why a variant did not make the report.
type SkipReason string

const (
	SkipNoBuyQuote   SkipReason = "no buy-side quote"
	SkipNoHistory    SkipReason = "no historical price signal"
	SkipLowLiquidity SkipReason = "insufficient liquidity"
	SkipBelowMargin  SkipReason = "margin below threshold"
)

// Skip records one filtered-out variant together with its reason.
type Skip struct {
	Variant Variant
	Reason  SkipReason
}

// CountSkips buckets skips by reason.
func CountSkips(skips []Skip) map[SkipReason]int {
	counts := make(map[SkipReason]int)
	for _, s := range skips {
		counts[s.Reason]++
	}
	return counts
}
