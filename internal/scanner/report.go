package scanner

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteReport renders the ranked result set as fixed-width lines, one per
// row, followed by a skip summary. An empty result set gets a distinguished
// message instead of a bare empty list.
func WriteReport(w io.Writer, r *Report, minProfitPercent float64) {
	fmt.Fprintf(w, "Profitable variants %s -> %s (>= %.0f%% margin):\n", r.BuyCity, r.SellMarket, minProfitPercent)

	if len(r.Rows) == 0 {
		fmt.Fprintln(w, "-- no profitable variants found --")
	} else {
		for _, row := range r.Rows {
			fmt.Fprintf(w, "%-16s | buy: %8d | avg: %10.0f | sold/day: %6.1f | profit: %+6.1f%%\n",
				row.ItemID, row.BuyPrice, row.AvgPrice, row.AvgSoldPerDay, row.ProfitPercent)
		}
	}

	if len(r.Skips) > 0 {
		fmt.Fprintf(w, "\nSkipped %d of %d variants:\n", len(r.Skips), r.Variants)
		counts := CountSkips(r.Skips)
		for _, reason := range []SkipReason{SkipNoBuyQuote, SkipNoHistory, SkipLowLiquidity, SkipBelowMargin} {
			if n := counts[reason]; n > 0 {
				fmt.Fprintf(w, "  %4d  %s\n", n, reason)
			}
		}
	}
}

// WriteSkips lists every skipped variant with its reason, for operators who
// need to know why a specific candidate is missing.
func WriteSkips(w io.Writer, r *Report) {
	for _, s := range r.Skips {
		fmt.Fprintf(w, "%-16s skipped: %s\n", s.Variant.ItemID, s.Reason)
	}
}

// BuildXLSX renders the report as a spreadsheet for offline sorting.
func BuildXLSX(r *Report) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Rank", "Item", "Tier", "Enchant", "Buy Price", "Avg Price", "Sold/Day", "Profit %"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range r.Rows {
		values := []interface{}{
			i + 1, row.ItemID, row.Tier, row.Enchantment,
			row.BuyPrice, row.AvgPrice, row.AvgSoldPerDay, row.ProfitPercent,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// ExportXLSX writes the report spreadsheet to path.
func ExportXLSX(r *Report, path string) error {
	f, err := BuildXLSX(r)
	if err != nil {
		return fmt.Errorf("failed to build spreadsheet: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}
