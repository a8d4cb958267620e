package repository

import (
	"database/sql"
	"time"
)

// nullableFloat converts a *float64 to a value suitable for SQLite storage.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableInt converts a *int to a value suitable for SQLite storage.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// floatPtr returns nil for SQL NULL.
func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// intPtr returns nil for SQL NULL.
func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// parseTimestamp parses an RFC3339 column, tolerating empty legacy values.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// nowUTC returns the current UTC time truncated to whole seconds.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
