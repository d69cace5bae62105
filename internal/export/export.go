// Package export renders query results as downloadable JSON or CSV.
package export

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"iocfeed/internal/ioc"
)

// CSVHeader is the column order of CSV exports.
const CSVHeader = "value,type,source,timestamp,confidence"

// JSONExport is the JSON download envelope.
type JSONExport struct {
	ExportedAt time.Time       `json:"exported_at"`
	Total      int             `json:"total"`
	Data       []ioc.Indicator `json:"data"`
}

// JSON renders indicators as the JSON export document.
func JSON(indicators []ioc.Indicator) ([]byte, error) {
	return json.MarshalIndent(JSONExport{
		ExportedAt: time.Now(),
		Total:      len(indicators),
		Data:       indicators,
	}, "", "  ")
}

// CSV renders indicators one quoted row per record. Fields are wrapped in
// double quotes without escaping embedded quotes, matching the upstream
// export format.
func CSV(indicators []ioc.Indicator) string {
	var b strings.Builder
	b.WriteString(CSVHeader + "\n")
	for _, in := range indicators {
		row := []string{
			in.Value,
			string(in.Type),
			in.Source,
			in.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(in.Confidence, 'g', -1, 64),
		}
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(field)
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
