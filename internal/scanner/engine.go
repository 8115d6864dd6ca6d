package scanner

import "sort"

// Engine computes per-variant profit, applies the admission filters and ranks
// the survivors. Pure: no I/O, inputs are never mutated, identical inputs
// produce identical output.
type Engine struct {
	MinProfitPercent float64
	MinSoldPerDay    float64
}

// Evaluate runs every variant through the filter chain. Filter order matters:
// each variant fails with the first reason that applies, so an operator can
// tell why a candidate is missing.
func (e Engine) Evaluate(variants []Variant, prices map[string]PriceQuote, aggregates map[string]Aggregate) ([]ProfitRow, []Skip) {
	var rows []ProfitRow
	var skips []Skip

	for _, v := range variants {
		quote := prices[v.ItemID]
		if !quote.Valid() {
			skips = append(skips, Skip{Variant: v, Reason: SkipNoBuyQuote})
			continue
		}

		agg := aggregates[v.ItemID]
		if agg.AvgPrice <= 0 {
			skips = append(skips, Skip{Variant: v, Reason: SkipNoHistory})
			continue
		}
		if agg.AvgSoldPerDay < e.MinSoldPerDay {
			skips = append(skips, Skip{Variant: v, Reason: SkipLowLiquidity})
			continue
		}

		profit := (agg.AvgPrice - float64(quote.Price)) / float64(quote.Price) * 100
		if profit < e.MinProfitPercent {
			skips = append(skips, Skip{Variant: v, Reason: SkipBelowMargin})
			continue
		}

		rows = append(rows, ProfitRow{
			ItemID:        v.ItemID,
			Tier:          v.Tier,
			Enchantment:   v.Enchantment,
			BuyPrice:      quote.Price,
			BuyDate:       quote.ObservedAt,
			AvgPrice:      agg.AvgPrice,
			AvgSoldPerDay: agg.AvgSoldPerDay,
			ProfitPercent: profit,
		})
	}

	// Margin first, liquidity among equal margins; item id keeps the order
	// total so repeated runs are byte-identical.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProfitPercent != rows[j].ProfitPercent {
			return rows[i].ProfitPercent > rows[j].ProfitPercent
		}
		if rows[i].AvgSoldPerDay != rows[j].AvgSoldPerDay {
			return rows[i].AvgSoldPerDay > rows[j].AvgSoldPerDay
		}
		return rows[i].ItemID < rows[j].ItemID
	})

	return rows, skips
}
