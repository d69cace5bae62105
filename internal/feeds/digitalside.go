package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"iocfeed/internal/ioc"
)

// DigitalsideFetcher pulls the OSINT Digitalside MISP URL feed: a JSON array
// of objects carrying the indicator in "url" or "value" and an optional
// observation date.
type DigitalsideFetcher struct {
	client *http.Client
	url    string
}

type digitalsideItem struct {
	URL       string `json:"url"`
	Value     string `json:"value"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
}

func NewDigitalsideFetcher(client *http.Client, url string) *DigitalsideFetcher {
	if url == "" {
		url = DigitalsideURL
	}
	return &DigitalsideFetcher{client: client, url: url}
}

func (f *DigitalsideFetcher) Name() string { return "digitalside" }

func (f *DigitalsideFetcher) Fetch(ctx context.Context) ([]ioc.RawRecord, error) {
	body, err := get(ctx, f.client, f.url)
	if err != nil {
		return nil, err
	}

	var items []digitalsideItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse digitalside feed: %w", err)
	}

	var records []ioc.RawRecord
	for _, item := range items {
		value := item.URL
		if value == "" {
			value = item.Value
		}
		if value == "" {
			continue
		}
		date := item.Date
		if date == "" {
			date = item.Timestamp
		}
		records = append(records, ioc.RawRecord{
			Value:     ioc.Sanitize(value, ioc.TypeURL),
			Type:      string(ioc.TypeURL),
			Source:    f.Name(),
			Timestamp: date,
		})
	}
	return records, nil
}
