package repository

import (
	"database/sql"
	"time"
)

// timestampLayouts are the formats a DATETIME column may come back in: RFC3339 for
// values written by this package, the SQLite CURRENT_TIMESTAMP format for defaults.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a nullable DATETIME column.
// Unparseable or NULL values yield the zero time; timestamps are informational only.
func parseTimestamp(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s.String); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
