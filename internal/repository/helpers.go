package repository

import (
	"strings"
	"time"
)

// defaultListLimit bounds history queries when the caller passes zero.
const defaultListLimit = 50

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

// storedTimeLayout is fixed-width so stored values sort lexically in time order.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime renders t for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// parseTime accepts both RFC3339 and RFC3339Nano stored values.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// hasPathSeparator reports whether name would escape the records directory.
func hasPathSeparator(name string) bool {
	return strings.ContainsAny(name, `/\`) || name == "." || name == ".."
}
