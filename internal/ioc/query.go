package ioc

import (
	"sort"
	"strings"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// QueryParams select, order and page the collection. Zero values mean "no
// filter"; Page and Limit are clamped, never rejected.
type QueryParams struct {
	Type       string
	Source     string
	Q          string
	Page       int
	Limit      int
	Sort       string
	CountsOnly bool
}

// Page is one page of query results.
type Page struct {
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
	HasNext    bool        `json:"hasNext"`
	HasPrev    bool        `json:"hasPrev"`
	Results    []Indicator `json:"results"`
}

// Counts are the countsOnly histograms over the filtered set.
type Counts struct {
	Total    int            `json:"total"`
	ByType   map[string]int `json:"byType"`
	BySource map[string]int `json:"bySource"`
}

// Query filters, sorts and pages a snapshot of the store. The store is never
// mutated.
func Query(store *Store, p QueryParams) Page {
	results := Filter(store.Snapshot(), p)
	sortIndicators(results, p.Sort)
	return paginate(results, p.Page, p.Limit)
}

// QueryCounts returns histograms by type and source over the filtered set.
func QueryCounts(store *Store, p QueryParams) Counts {
	results := Filter(store.Snapshot(), p)
	c := Counts{Total: len(results), ByType: map[string]int{}, BySource: map[string]int{}}
	for _, in := range results {
		c.ByType[string(in.Type)]++
		c.BySource[in.Source]++
	}
	return c
}

// Filter applies the AND-composed type/source/q filters.
func Filter(indicators []Indicator, p QueryParams) []Indicator {
	typ := strings.ToLower(p.Type)
	source := strings.ToLower(p.Source)
	q := strings.ToLower(p.Q)

	out := indicators[:0:0]
	for _, in := range indicators {
		if typ != "" && strings.ToLower(string(in.Type)) != typ {
			continue
		}
		if source != "" && strings.ToLower(in.Source) != source {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(in.Value), q) &&
			!strings.Contains(strings.ToLower(string(in.Type)), q) &&
			!strings.Contains(strings.ToLower(in.Source), q) {
			continue
		}
		out = append(out, in)
	}
	return out
}

// sortIndicators orders results in place. An unrecognized key leaves the
// filtered order unchanged.
func sortIndicators(results []Indicator, key string) {
	switch key {
	case "latest":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Timestamp.After(results[j].Timestamp)
		})
	case "oldest":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Timestamp.Before(results[j].Timestamp)
		})
	case "alpha":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Value < results[j].Value
		})
	case "alpha-desc":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Value > results[j].Value
		})
	case "confidence":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Confidence > results[j].Confidence
		})
	case "confidence-asc":
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Confidence < results[j].Confidence
		})
	}
}

func paginate(results []Indicator, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	total := len(results)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		Results:    results[start:end],
	}
}
