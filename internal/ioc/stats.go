package ioc

import "time"

// Stats is the aggregate view over the whole collection.
type Stats struct {
	Total          int            `json:"total"`
	LastFetchTime  *time.Time     `json:"lastFetchTime"`
	FetchStats     FetchStats     `json:"fetchStats"`
	Breakdown      Breakdown      `json:"breakdown"`
	RecentActivity RecentActivity `json:"recentActivity"`
	OldestEntry    *time.Time     `json:"oldestEntry"`
	NewestEntry    *time.Time     `json:"newestEntry"`
}

type Breakdown struct {
	ByType   map[string]int `json:"byType"`
	BySource map[string]int `json:"bySource"`
	ByHour   map[int]int    `json:"byHour"`
}

type RecentActivity struct {
	LastHour int `json:"lastHour"`
	LastDay  int `json:"lastDay"`
}

// ComputeStats aggregates the full collection. On an empty collection the
// histograms are empty and the entry bounds are nil.
func ComputeStats(store *Store) Stats {
	now := time.Now()
	oneHourAgo := now.Add(-time.Hour)
	oneDayAgo := now.Add(-24 * time.Hour)

	stats := Stats{
		LastFetchTime: store.LastFetchTime(),
		FetchStats:    store.Stats(),
		Breakdown: Breakdown{
			ByType:   map[string]int{},
			BySource: map[string]int{},
			ByHour:   map[int]int{},
		},
	}

	var oldest, newest time.Time
	for _, in := range store.Snapshot() {
		stats.Total++
		stats.Breakdown.ByType[string(in.Type)]++
		stats.Breakdown.BySource[in.Source]++
		stats.Breakdown.ByHour[in.Timestamp.Local().Hour()]++

		if in.Timestamp.After(oneHourAgo) {
			stats.RecentActivity.LastHour++
		}
		if in.Timestamp.After(oneDayAgo) {
			stats.RecentActivity.LastDay++
		}
		if oldest.IsZero() || in.Timestamp.Before(oldest) {
			oldest = in.Timestamp
		}
		if newest.IsZero() || in.Timestamp.After(newest) {
			newest = in.Timestamp
		}
	}

	if stats.Total > 0 {
		stats.OldestEntry = &oldest
		stats.NewestEntry = &newest
	}
	return stats
}
