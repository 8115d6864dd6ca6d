package albion

import (
	"strconv"
	"strings"
	"time"
)

// priceRow is one row of the bulk prices endpoint. The API mixes quality
// tiers and snapshot times for the same item, so one item id usually maps to
// several rows.
type priceRow struct {
	ItemID           string    `json:"item_id"`
	City             string    `json:"city"`
	Quality          int       `json:"quality"`
	SellPriceMin     flexPrice `json:"sell_price_min"`
	SellPriceMinDate flexTime  `json:"sell_price_min_date"`
}

// historySeries is one per-location series of the history endpoint.
type historySeries struct {
	Location string             `json:"location"`
	ItemID   string             `json:"item_id"`
	Quality  int                `json:"quality"`
	Data     []historyDataPoint `json:"data"`
}

type historyDataPoint struct {
	ItemCount int      `json:"item_count"`
	AvgPrice  float64  `json:"avg_price"`
	Timestamp flexTime `json:"timestamp"`
}

// flexPrice tolerates the API emitting prices as either a number or a quoted
// string. Unparsable values decode to 0 and the row is then dropped as a
// non-positive price rather than failing the whole response.
type flexPrice int

func (p *flexPrice) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = flexPrice(f)
	return nil
}

// flexTime parses the API's undeclared-zone ISO timestamps as UTC. Absent or
// unparsable dates decode to the zero time.
type flexTime struct {
	time.Time
}

var timeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" || s == "0001-01-01T00:00:00" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}
