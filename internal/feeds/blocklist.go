package feeds

import (
	"context"
	"net/http"
	"strings"

	"iocfeed/internal/ioc"
)

// BlocklistFetcher pulls the blocklist.de attacker IP list: one IPv4 per
// line, comments start with '#'.
type BlocklistFetcher struct {
	client *http.Client
	url    string
}

func NewBlocklistFetcher(client *http.Client, url string) *BlocklistFetcher {
	if url == "" {
		url = BlocklistURL
	}
	return &BlocklistFetcher{client: client, url: url}
}

func (f *BlocklistFetcher) Name() string { return "blocklist.de" }

func (f *BlocklistFetcher) Fetch(ctx context.Context) ([]ioc.RawRecord, error) {
	body, err := get(ctx, f.client, f.url)
	if err != nil {
		return nil, err
	}

	var records []ioc.RawRecord
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, ioc.RawRecord{
			Value:  line,
			Type:   string(ioc.TypeIP),
			Source: f.Name(),
		})
	}
	return records, nil
}
