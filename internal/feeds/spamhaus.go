package feeds

import (
	"context"
	"net/http"
	"strings"

	"iocfeed/internal/ioc"
)

// SpamhausFetcher pulls the Spamhaus DROP list: semicolon-delimited rows,
// the first field is the CIDR block, comment lines start with ';'.
type SpamhausFetcher struct {
	client *http.Client
	url    string
}

func NewSpamhausFetcher(client *http.Client, url string) *SpamhausFetcher {
	if url == "" {
		url = SpamhausURL
	}
	return &SpamhausFetcher{client: client, url: url}
}

func (f *SpamhausFetcher) Name() string { return "spamhaus" }

func (f *SpamhausFetcher) Fetch(ctx context.Context) ([]ioc.RawRecord, error) {
	body, err := get(ctx, f.client, f.url)
	if err != nil {
		return nil, err
	}

	var records []ioc.RawRecord
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		subnet := strings.TrimSpace(strings.SplitN(line, ";", 2)[0])
		if subnet == "" {
			continue
		}
		records = append(records, ioc.RawRecord{
			Value:  subnet,
			Type:   string(ioc.TypeSubnet),
			Source: f.Name(),
		})
	}
	return records, nil
}
