package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"iocfeed/internal/feeds"
	"iocfeed/internal/ioc"
	"iocfeed/internal/server"
)

// feed-fetch runs a single refresh cycle and prints the summary. Useful for
// smoke-testing feed connectivity without starting the API server.
func main() {
	cfg := server.LoadConfig()

	client := feeds.NewClient(cfg.FetchTimeout)
	svc := ioc.NewService(ioc.NewStore())
	svc.Register(feeds.NewBlocklistFetcher(client, cfg.BlocklistURL))
	svc.Register(feeds.NewSpamhausFetcher(client, cfg.SpamhausURL))
	svc.Register(feeds.NewDigitalsideFetcher(client, cfg.DigitalsideURL))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := svc.RefreshAll(ctx)
	if err != nil {
		slog.Error("refresh failed", "err", err)
		os.Exit(1)
	}
	slog.Info("refresh summary",
		"total", summary.Total,
		"new", summary.NewEntries,
		"duration_ms", summary.DurationMs)
}
