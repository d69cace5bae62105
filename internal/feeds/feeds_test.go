package feeds

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iocfeed/internal/ioc"
)

func mockClient(t *testing.T) *http.Client {
	t.Helper()
	client := NewClient(5 * time.Second)
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestBlocklistFetcher(t *testing.T) {
	client := mockClient(t)
	httpmock.RegisterResponder("GET", "https://feeds.test/all.txt",
		httpmock.NewStringResponder(200, "# attacker IPs\n1.2.3.4\n\n  5.6.7.8  \n# trailing comment\n"))

	f := NewBlocklistFetcher(client, "https://feeds.test/all.txt")
	records, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ioc.RawRecord{Value: "1.2.3.4", Type: "ip", Source: "blocklist.de"}, records[0])
	assert.Equal(t, "5.6.7.8", records[1].Value)
}

func TestSpamhausFetcher(t *testing.T) {
	client := mockClient(t)
	httpmock.RegisterResponder("GET", "https://feeds.test/drop.txt",
		httpmock.NewStringResponder(200, "; Spamhaus DROP List\n224.0.0.0/3 ; SBL212803\n10.0.0.0/8 ; SBL123456\n;\n"))

	f := NewSpamhausFetcher(client, "https://feeds.test/drop.txt")
	records, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "224.0.0.0/3", records[0].Value)
	assert.Equal(t, "subnet", records[0].Type)
	assert.Equal(t, "spamhaus", records[0].Source)
}

func TestDigitalsideFetcher(t *testing.T) {
	client := mockClient(t)
	httpmock.RegisterResponder("GET", "https://feeds.test/misp.json",
		httpmock.NewStringResponder(200, `[
			{"url": "http://evil.example/a.exe", "date": "2024-03-01T10:00:00Z"},
			{"value": "hxxp://bad[.]example/b", "timestamp": "2024-03-02"},
			{"date": "2024-03-03"}
		]`))

	f := NewDigitalsideFetcher(client, "https://feeds.test/misp.json")
	records, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "http://evil.example/a.exe", records[0].Value)
	assert.Equal(t, "2024-03-01T10:00:00Z", records[0].Timestamp)
	// defanged values are sanitized before normalization
	assert.Equal(t, "http://bad.example/b", records[1].Value)
	assert.Equal(t, "2024-03-02", records[1].Timestamp)
}

func TestFetcherErrors(t *testing.T) {
	client := mockClient(t)
	httpmock.RegisterResponder("GET", "https://feeds.test/teapot",
		httpmock.NewStringResponder(418, "short and stout"))
	httpmock.RegisterResponder("GET", "https://feeds.test/garbage.json",
		httpmock.NewStringResponder(200, "not json at all"))

	_, err := NewBlocklistFetcher(client, "https://feeds.test/teapot").Fetch(context.Background())
	assert.Error(t, err)

	_, err = NewDigitalsideFetcher(client, "https://feeds.test/garbage.json").Fetch(context.Background())
	assert.Error(t, err)

	// unregistered host looks like a network failure
	_, err = NewSpamhausFetcher(client, "https://feeds.test/nowhere").Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetcherDefaults(t *testing.T) {
	assert.Equal(t, BlocklistURL, NewBlocklistFetcher(nil, "").url)
	assert.Equal(t, SpamhausURL, NewSpamhausFetcher(nil, "").url)
	assert.Equal(t, DigitalsideURL, NewDigitalsideFetcher(nil, "").url)
	assert.Equal(t, defaultTimeout, NewClient(0).Timeout)
}
