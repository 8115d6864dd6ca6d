package scanner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// PriceSource supplies current buy-side quotes in one batched call.
type PriceSource interface {
	BulkCurrentPrices(ctx context.Context, itemIDs []string, city string) map[string]PriceQuote
}

// Progress is a point-in-time snapshot for a polling UI.
type Progress struct {
	Total     int       `json:"total"`
	Done      int       `json:"done"`
	Running   bool      `json:"running"`
	StartedAt time.Time `json:"started_at"`
}

// Report is the outcome of one full pipeline run.
type Report struct {
	BuyCity    string
	SellMarket string
	Rows       []ProfitRow
	Skips      []Skip
	Variants   int
	StartedAt  time.Time
	Duration   time.Duration
}

// Scanner drives one pipeline run: variants -> bulk prices -> per-variant
// history aggregation on a bounded worker pool -> filtered, ranked rows.
type Scanner struct {
	prices     PriceSource
	aggregator *Aggregator
	generator  Generator
	engine     Engine
	buyCity    string
	sellMarket string
	workers    int

	mu       sync.Mutex
	progress Progress
}

func NewScanner(prices PriceSource, aggregator *Aggregator, generator Generator, engine Engine, buyCity, sellMarket string, workers int) (*Scanner, error) {
	if err := generator.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", workers)
	}
	return &Scanner{
		prices:     prices,
		aggregator: aggregator,
		generator:  generator,
		engine:     engine,
		buyCity:    buyCity,
		sellMarket: sellMarket,
		workers:    workers,
	}, nil
}

// Progress returns the current counters. Safe to call from any goroutine
// while a run is in flight.
func (s *Scanner) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Run executes one full scan. Per-variant failures never abort the run; a
// variant without data simply ends up skipped with its reason. The returned
// ranking does not depend on worker completion order.
func (s *Scanner) Run(ctx context.Context, baseCodes []string) (*Report, error) {
	if len(baseCodes) == 0 {
		return nil, fmt.Errorf("base code list must not be empty")
	}

	variants := s.generator.All(baseCodes)
	started := time.Now()

	s.mu.Lock()
	s.progress = Progress{Total: len(variants), Running: true, StartedAt: started}
	s.mu.Unlock()

	log.Printf("Scanning %d variants (%s -> %s)...", len(variants), s.buyCity, s.sellMarket)

	itemIDs := make([]string, len(variants))
	for i, v := range variants {
		itemIDs[i] = v.ItemID
	}
	prices := s.prices.BulkCurrentPrices(ctx, itemIDs, s.buyCity)
	log.Printf("Got %d buy-side quotes for %d variants", len(prices), len(variants))

	aggregates := make(map[string]Aggregate, len(variants))
	var aggMu sync.Mutex
	jobs := make(chan Variant)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range jobs {
				agg := s.aggregator.Aggregate(ctx, v.ItemID, s.sellMarket)
				aggMu.Lock()
				aggregates[v.ItemID] = agg
				aggMu.Unlock()

				s.mu.Lock()
				s.progress.Done++
				s.mu.Unlock()
			}
		}()
	}

	for _, v := range variants {
		jobs <- v
	}
	close(jobs)
	wg.Wait()

	rows, skips := s.engine.Evaluate(variants, prices, aggregates)

	s.mu.Lock()
	s.progress.Running = false
	s.mu.Unlock()

	report := &Report{
		BuyCity:    s.buyCity,
		SellMarket: s.sellMarket,
		Rows:       rows,
		Skips:      skips,
		Variants:   len(variants),
		StartedAt:  started,
		Duration:   time.Since(started),
	}
	log.Printf("Scan finished in %s: %d profitable, %d skipped", report.Duration.Round(time.Millisecond), len(rows), len(skips))
	return report, nil
}
