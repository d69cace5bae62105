package server

import (
	"os"
	"time"
)

// Config holds server configuration
type Config struct {
	HTTPAddr        string
	MetricsAddr     string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	BlocklistURL    string
	SpamhausURL     string
	DigitalsideURL  string
}

// LoadConfig reads environment variables and returns a Config. Feed URL
// overrides are for tests and air-gapped mirrors; empty means the default
// upstream.
func LoadConfig() *Config {
	return &Config{
		HTTPAddr:        getEnv("IOC_HTTP_ADDR", ":8080"),
		MetricsAddr:     getEnv("IOC_METRICS_ADDR", ":9090"),
		FetchTimeout:    getDuration("IOC_FETCH_TIMEOUT", 30*time.Second),
		RefreshInterval: getDuration("IOC_REFRESH_INTERVAL", 0),
		BlocklistURL:    getEnv("IOC_BLOCKLIST_URL", ""),
		SpamhausURL:     getEnv("IOC_SPAMHAUS_URL", ""),
		DigitalsideURL:  getEnv("IOC_DIGITALSIDE_URL", ""),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
