package ioc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"iocfeed/internal/metrics"
)

// Service coordinates fetching, normalization and merging into the store.
type Service struct {
	store    *Store
	fetchers []Fetcher
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Register adds a fetcher to the refresh cycle.
func (s *Service) Register(f Fetcher) {
	s.fetchers = append(s.fetchers, f)
}

func (s *Service) Store() *Store { return s.store }

// RefreshAll runs every fetcher concurrently, waits for all of them,
// normalizes the combined batch and folds it into the store with a single
// collection swap. A fetcher failure yields zero records for that source and
// never aborts its siblings.
func (s *Service) RefreshAll(ctx context.Context) (summary RefreshSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh panicked: %v", r)
			s.store.RecordFailure(err)
			metrics.FetchRuns.WithLabelValues("failure").Inc()
		}
	}()

	start := time.Now()
	slog.Info("starting feed refresh", "sources", len(s.fetchers))

	batches := make([][]RawRecord, len(s.fetchers))
	var wg sync.WaitGroup
	for i, f := range s.fetchers {
		wg.Add(1)
		go func(i int, fetcher Fetcher) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("fetch panicked", "source", fetcher.Name(), "err", r)
				}
			}()
			records, ferr := fetcher.Fetch(ctx)
			if ferr != nil {
				slog.Error("fetch failed", "source", fetcher.Name(), "err", ferr)
				return
			}
			slog.Info("fetched records", "source", fetcher.Name(), "count", len(records))
			metrics.IndicatorsFetched.WithLabelValues(fetcher.Name()).Add(float64(len(records)))
			batches[i] = records
		}(i, f)
	}
	wg.Wait()

	incoming := make([]Indicator, 0)
	for _, batch := range batches {
		for _, raw := range batch {
			if in, ok := Normalize(raw); ok {
				incoming = append(incoming, in)
			}
		}
	}

	before := s.store.Len()
	merged := Merge(s.store.Collection(), incoming)
	s.store.Replace(merged)

	now := time.Now()
	s.store.RecordSuccess(now)
	metrics.FetchRuns.WithLabelValues("success").Inc()
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	metrics.CollectionSize.Set(float64(len(merged)))

	summary = RefreshSummary{
		Success:    true,
		Total:      len(merged),
		NewEntries: len(merged) - before,
		DurationMs: time.Since(start).Milliseconds(),
		Timestamp:  now,
	}
	slog.Info("refresh completed", "total", summary.Total, "new", summary.NewEntries, "duration_ms", summary.DurationMs)
	return summary, nil
}
