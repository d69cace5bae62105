package ioc

import (
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"
)

// confidenceScores maps a feed source to its reliability score.
var confidenceScores = map[string]float64{
	"spamhaus":     0.95,
	"blocklist.de": 0.90,
	"digitalside":  0.85,
	"unknown":      0.50,
}

// timestampLayouts are tried in order when parsing feed timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize converts a raw fetched record into a canonical Indicator.
// Returns false when the value is empty after trimming. Missing type/source
// default to "unknown"; an unparseable timestamp falls back to now. Format
// validation failures are logged but the record is kept.
func Normalize(raw RawRecord) (Indicator, bool) {
	value := strings.TrimSpace(raw.Value)
	if value == "" {
		return Indicator{}, false
	}

	typ := strings.ToLower(strings.TrimSpace(raw.Type))
	if typ == "" {
		typ = string(TypeUnknown)
	}
	source := strings.ToLower(strings.TrimSpace(raw.Source))
	if source == "" {
		source = "unknown"
	}

	ts := parseTimestamp(raw.Timestamp)

	if !Validate(value, Type(typ)) {
		slog.Warn("indicator failed format validation", "type", typ, "value", value, "source", source)
	}

	return Indicator{
		ID:         recordID(source, value),
		Value:      value,
		Type:       Type(typ),
		Source:     source,
		Timestamp:  ts,
		Confidence: Confidence(source),
	}, true
}

// Confidence returns the reliability score for a source; unseen sources get
// the "unknown" score.
func Confidence(source string) float64 {
	if score, ok := confidenceScores[source]; ok {
		return score
	}
	return confidenceScores["unknown"]
}

// recordID derives a stable 16-hex-char identifier from source and value.
func recordID(source, value string) string {
	sum := md5.Sum([]byte(source + ":" + value))
	return hex.EncodeToString(sum[:])[:16]
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now()
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	slog.Warn("unparseable feed timestamp, using current time", "timestamp", s)
	return time.Now()
}

// Sanitize strips common defanging artifacts from an indicator value, e.g.
// "[.]" for "." and "hxxp" for "http".
func Sanitize(value string, typ Type) string {
	s := strings.TrimSpace(value)
	switch typ {
	case TypeURL:
		s = strings.ReplaceAll(s, "[.]", ".")
		s = strings.ReplaceAll(s, "hxxp", "http")
		s = strings.ReplaceAll(s, "hXXp", "http")
	case TypeDomain, TypeIP:
		s = strings.ReplaceAll(s, "[.]", ".")
	}
	return s
}
