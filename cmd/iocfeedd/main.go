package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"iocfeed/internal/feeds"
	"iocfeed/internal/ioc"
	"iocfeed/internal/server"
)

func main() {
	cfg := server.LoadConfig()

	client := feeds.NewClient(cfg.FetchTimeout)
	svc := ioc.NewService(ioc.NewStore())
	svc.Register(feeds.NewBlocklistFetcher(client, cfg.BlocklistURL))
	svc.Register(feeds.NewSpamhausFetcher(client, cfg.SpamhausURL))
	svc.Register(feeds.NewDigitalsideFetcher(client, cfg.DigitalsideURL))

	srv := server.New(svc, cfg)
	go srv.StartMetrics(cfg.MetricsAddr)

	if cfg.RefreshInterval > 0 {
		go refreshLoop(svc, cfg.RefreshInterval)
	}

	slog.Info("listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.Router()); err != nil {
		slog.Error("server error", "err", err)
	}
}

// refreshLoop re-ingests all feeds on a fixed interval. Clients can still
// trigger a refresh over the API at any time.
func refreshLoop(svc *ioc.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if _, err := svc.RefreshAll(context.Background()); err != nil {
			slog.Error("scheduled refresh failed", "err", err)
		}
	}
}
