package ioc

import (
	"context"
	"time"
)

// Type categorizes an indicator value.
type Type string

const (
	TypeIP      Type = "ip"
	TypeSubnet  Type = "subnet"
	TypeURL     Type = "url"
	TypeDomain  Type = "domain"
	TypeHash    Type = "hash"
	TypeUnknown Type = "unknown"
)

// Indicator is a normalized threat indicator record. Identity across merge
// cycles is the (source, value) pair; ID is a derived hash for client keying
// and is not part of identity.
type Indicator struct {
	ID         string    `json:"id"`
	Value      string    `json:"value"`
	Type       Type      `json:"type"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// Key returns the dedup key for the indicator.
func (in Indicator) Key() string {
	return in.Source + "|" + in.Value
}

// RawRecord is the shape a fetcher emits before normalization. Timestamp is
// the feed's own string representation; empty or unparseable values fall
// back to ingestion time.
type RawRecord struct {
	Value     string
	Type      string
	Source    string
	Timestamp string
}

// Fetcher retrieves raw records from one external feed.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// FetchStats are process-wide fetch-run counters.
type FetchStats struct {
	TotalFetches      int64  `json:"totalFetches"`
	SuccessfulFetches int64  `json:"successfulFetches"`
	FailedFetches     int64  `json:"failedFetches"`
	LastError         string `json:"lastError,omitempty"`
}

// RefreshSummary reports the outcome of one refresh cycle.
type RefreshSummary struct {
	Success    bool      `json:"success"`
	Total      int       `json:"total"`
	NewEntries int       `json:"newEntries"`
	DurationMs int64     `json:"duration"`
	Timestamp  time.Time `json:"timestamp"`
}
