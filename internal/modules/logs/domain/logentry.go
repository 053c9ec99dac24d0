package domain

import (
	"strings"
	"time"

	monitordomain "evwatch/internal/modules/monitor/domain"
)

// LogEntry wraps one fetched historical batch. Entries only ever accumulate
// in memory for the life of the process; nothing evicts or persists them.
type LogEntry struct {
	ID           string
	CapturedAt   time.Time
	Timestamp    string
	SessionCount int
	AnomalyCount int
	Sessions     []monitordomain.Session
}

// Filter returns the entries whose id or timestamp string contains the query,
// case-insensitively. A blank query matches everything. The input slice is
// never modified.
func Filter(entries []LogEntry, query string) []LogEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]LogEntry, len(entries))
		copy(out, entries)
		return out
	}
	var out []LogEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.ID), query) ||
			strings.Contains(strings.ToLower(e.Timestamp), query) {
			out = append(out, e)
		}
	}
	return out
}
