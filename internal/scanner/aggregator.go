package scanner

import (
	"context"
	"log"
	"time"
)

// HistoryFetcher supplies raw daily history for one item at one location.
// Implementations must degrade failures to an empty slice.
type HistoryFetcher interface {
	History(ctx context.Context, itemID, location string, windowDays int) []HistoryPoint
}

// Aggregator reduces raw history into (average price, average units sold per
// day) using an ordered ladder of widening windows. Each wider window is only
// attempted after the narrower one provably failed, with a throttling pause
// between the attempts.
type Aggregator struct {
	fetcher   HistoryFetcher
	windows   []int
	minPoints int
	delay     time.Duration

	sleep func(time.Duration)
	now   func() time.Time
}

func NewAggregator(fetcher HistoryFetcher, windows []int, minPoints int, delay time.Duration) *Aggregator {
	return &Aggregator{
		fetcher:   fetcher,
		windows:   windows,
		minPoints: minPoints,
		delay:     delay,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Aggregate walks the window ladder until a window yields enough qualifying
// points with positive price and volume. An exhausted ladder returns the zero
// Aggregate, signalling insufficient market activity.
func (a *Aggregator) Aggregate(ctx context.Context, itemID, location string) Aggregate {
	for i, days := range a.windows {
		if i > 0 {
			a.sleep(a.delay)
		}

		points := a.fetcher.History(ctx, itemID, location, days)
		cutoff := a.now().UTC().AddDate(0, 0, -days)

		var used []HistoryPoint
		for _, p := range points {
			if !p.Timestamp.Before(cutoff) {
				used = append(used, p)
			}
		}
		if len(used) < a.minPoints {
			log.Printf("%s: %dd window has %d/%d points, widening", itemID, days, len(used), a.minPoints)
			continue
		}

		agg := reduce(used)
		if agg.AvgPrice <= 0 || agg.AvgSoldPerDay <= 0 {
			log.Printf("%s: %dd window has no positive price/volume signal, widening", itemID, days)
			continue
		}

		agg.WindowDays = days
		agg.PointsUsed = len(used)
		return agg
	}
	return Aggregate{}
}

// reduce computes the window aggregate. Units sold are grouped by calendar
// day and the per-day sums averaged, so sparse days don't understate volume
// and multiple quality rows sharing a day don't inflate the day count.
func reduce(points []HistoryPoint) Aggregate {
	var priceSum float64
	var priced int
	unitsByDay := make(map[string]int)

	for _, p := range points {
		if p.AvgPrice > 0 {
			priceSum += p.AvgPrice
			priced++
		}
		day := p.Timestamp.UTC().Format("2006-01-02")
		unitsByDay[day] += p.UnitsSold
	}

	agg := Aggregate{}
	if priced > 0 {
		agg.AvgPrice = priceSum / float64(priced)
	}
	if len(unitsByDay) > 0 {
		var unitsSum int
		for _, units := range unitsByDay {
			unitsSum += units
		}
		agg.AvgSoldPerDay = float64(unitsSum) / float64(len(unitsByDay))
	}
	return agg
}
