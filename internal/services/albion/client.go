package albion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"albion-profit-checker/internal/scanner"

	"github.com/go-resty/resty/v2"
)

// Client wraps the Albion Data Project price API. Transport failures,
// non-2xx responses and malformed payloads all degrade to empty results;
// nothing past this boundary ever sees a remote error.
type Client struct {
	baseURL       string
	client        *resty.Client
	freshnessDays int
	now           func() time.Time
}

func NewClient(baseURL string, timeout time.Duration, freshnessDays int) *Client {
	client := resty.New()
	client.SetTimeout(timeout)

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        client,
		freshnessDays: freshnessDays,
		now:           time.Now,
	}
}

// BulkCurrentPrices fetches current sell quotes for all ids in one batched
// request and selects one quote per id. Ids without a usable quote are absent
// from the result; a failed call yields an empty map.
func (c *Client) BulkCurrentPrices(ctx context.Context, itemIDs []string, city string) map[string]scanner.PriceQuote {
	quotes := make(map[string]scanner.PriceQuote)
	if len(itemIDs) == 0 {
		return quotes
	}

	reqURL := fmt.Sprintf("%s/api/v2/stats/prices/%s.json?locations=%s",
		c.baseURL, strings.Join(itemIDs, ","), url.QueryEscape(city))

	resp, err := c.client.R().SetContext(ctx).Get(reqURL)
	if err != nil {
		log.Printf("Bulk price request failed: %v", err)
		return quotes
	}
	if !resp.IsSuccess() {
		log.Printf("Bulk price request returned status %d", resp.StatusCode())
		return quotes
	}

	var rows []priceRow
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		log.Printf("Bulk price response not parsable: %v", err)
		return quotes
	}

	grouped := make(map[string][]priceRow)
	for _, row := range rows {
		if !strings.EqualFold(row.City, city) {
			continue
		}
		if row.Quality < 1 || row.Quality > 5 {
			continue
		}
		if row.SellPriceMin <= 0 {
			continue
		}
		grouped[row.ItemID] = append(grouped[row.ItemID], row)
	}

	for itemID, candidates := range grouped {
		if quote, ok := c.selectQuote(candidates); ok {
			quotes[itemID] = quote
		}
	}
	return quotes
}

// selectQuote picks one quote from the city-matched candidate rows:
// the cheapest fresh row first, else the most recently dated row, else the
// global minimum when no row carries a date. A cheap but ancient quote is
// unrealistic, so freshness wins over raw minimum.
func (c *Client) selectQuote(candidates []priceRow) (scanner.PriceQuote, bool) {
	if len(candidates) == 0 {
		return scanner.PriceQuote{}, false
	}
	cutoff := c.now().UTC().AddDate(0, 0, -c.freshnessDays)

	// Cheapest among fresh rows.
	var best scanner.PriceQuote
	for _, row := range candidates {
		if row.SellPriceMinDate.IsZero() || row.SellPriceMinDate.Before(cutoff) {
			continue
		}
		if best.Price == 0 || int(row.SellPriceMin) < best.Price {
			best = scanner.PriceQuote{Price: int(row.SellPriceMin), ObservedAt: row.SellPriceMinDate.Time}
		}
	}
	if best.Price > 0 {
		return best, true
	}

	// No fresh rows: take the most recently dated one regardless of price.
	for _, row := range candidates {
		if row.SellPriceMinDate.IsZero() {
			continue
		}
		if best.Price == 0 || row.SellPriceMinDate.After(best.ObservedAt) {
			best = scanner.PriceQuote{Price: int(row.SellPriceMin), ObservedAt: row.SellPriceMinDate.Time}
		}
	}
	if best.Price > 0 {
		return best, true
	}

	// No dates at all: global minimum.
	for _, row := range candidates {
		if best.Price == 0 || int(row.SellPriceMin) < best.Price {
			best = scanner.PriceQuote{Price: int(row.SellPriceMin)}
		}
	}
	return best, best.Price > 0
}

// History fetches the daily series for one item at one location, limited to
// the given trailing window. Failures degrade to an empty slice.
func (c *Client) History(ctx context.Context, itemID, location string, windowDays int) []scanner.HistoryPoint {
	since := c.now().UTC().AddDate(0, 0, -windowDays)
	reqURL := fmt.Sprintf("%s/api/v2/stats/history/%s.json?locations=%s&date=%s&time-scale=24",
		c.baseURL, url.PathEscape(itemID), url.QueryEscape(location), since.Format("2006-01-02"))

	resp, err := c.client.R().SetContext(ctx).Get(reqURL)
	if err != nil {
		log.Printf("History request for %s failed: %v", itemID, err)
		return nil
	}
	if !resp.IsSuccess() {
		log.Printf("History request for %s returned status %d", itemID, resp.StatusCode())
		return nil
	}

	var series []historySeries
	if err := json.Unmarshal(resp.Body(), &series); err != nil {
		log.Printf("History response for %s not parsable: %v", itemID, err)
		return nil
	}

	var points []scanner.HistoryPoint
	for _, s := range series {
		if !strings.EqualFold(s.Location, location) {
			continue
		}
		for _, p := range s.Data {
			if p.Timestamp.IsZero() {
				continue
			}
			points = append(points, scanner.HistoryPoint{
				Timestamp: p.Timestamp.Time,
				AvgPrice:  p.AvgPrice,
				UnitsSold: p.ItemCount,
			})
		}
	}
	return points
}
