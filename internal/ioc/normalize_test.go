package ioc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRejectsEmptyValue(t *testing.T) {
	_, ok := Normalize(RawRecord{Value: "   ", Type: "ip", Source: "blocklist.de"})
	assert.False(t, ok)

	_, ok = Normalize(RawRecord{})
	assert.False(t, ok)
}

func TestNormalizeDefaults(t *testing.T) {
	in, ok := Normalize(RawRecord{Value: " 1.2.3.4 "})
	require.True(t, ok)
	assert.Equal(t, "1.2.3.4", in.Value)
	assert.Equal(t, TypeUnknown, in.Type)
	assert.Equal(t, "unknown", in.Source)
	assert.Equal(t, 0.50, in.Confidence)
	assert.WithinDuration(t, time.Now(), in.Timestamp, 5*time.Second)
}

func TestNormalizeLowercasesTypeAndSource(t *testing.T) {
	in, ok := Normalize(RawRecord{Value: "1.2.3.4", Type: "IP", Source: "Blocklist.DE"})
	require.True(t, ok)
	assert.Equal(t, TypeIP, in.Type)
	assert.Equal(t, "blocklist.de", in.Source)
	assert.Equal(t, 0.90, in.Confidence)
}

func TestNormalizeTimestamp(t *testing.T) {
	in, ok := Normalize(RawRecord{Value: "x", Timestamp: "2024-03-01T10:00:00Z"})
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), in.Timestamp.UTC())

	// unparseable input falls back to now instead of erroring
	in, ok = Normalize(RawRecord{Value: "x", Timestamp: "not-a-date"})
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), in.Timestamp, 5*time.Second)
}

func TestNormalizeIDIsStable(t *testing.T) {
	a, _ := Normalize(RawRecord{Value: "1.2.3.4", Type: "ip", Source: "spamhaus"})
	b, _ := Normalize(RawRecord{Value: "1.2.3.4", Type: "ip", Source: "spamhaus"})
	c, _ := Normalize(RawRecord{Value: "1.2.3.4", Type: "ip", Source: "blocklist.de"})

	assert.Len(t, a.ID, 16)
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestNormalizeKeepsInvalidFormats(t *testing.T) {
	// validation mismatch is logged, never dropped
	in, ok := Normalize(RawRecord{Value: "999.999.999.999", Type: "ip", Source: "spamhaus"})
	require.True(t, ok)
	assert.Equal(t, "999.999.999.999", in.Value)
}

func TestConfidenceTable(t *testing.T) {
	assert.Equal(t, 0.95, Confidence("spamhaus"))
	assert.Equal(t, 0.90, Confidence("blocklist.de"))
	assert.Equal(t, 0.85, Confidence("digitalside"))
	assert.Equal(t, 0.50, Confidence("never-heard-of-it"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "http://evil.example/x", Sanitize("hxxp://evil[.]example/x", TypeURL))
	assert.Equal(t, "evil.example.com", Sanitize("evil[.]example[.]com", TypeDomain))
	assert.Equal(t, "1.2.3.4", Sanitize("1[.]2[.]3[.]4", TypeIP))
	assert.Equal(t, "abc[.]def", Sanitize("abc[.]def", TypeHash))
}
