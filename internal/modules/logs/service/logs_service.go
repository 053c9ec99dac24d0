package service

import (
	"context"
	"fmt"
	"sync"

	"evwatch/internal/modules/logs/domain"
	logsout "evwatch/internal/modules/logs/port/out"
	monitordomain "evwatch/internal/modules/monitor/domain"
	"evwatch/internal/platform/clock"
)

// LogsService keeps the in-memory archive of fetched batches. The mutex only
// guards against a fetch completing on a background task while the UI reads
// the list; there is never more than one fetch in flight.
type LogsService struct {
	clock     clock.Clock
	source    logsout.BatchSource
	transform logsout.SessionTransformer

	mu      sync.Mutex
	entries []domain.LogEntry
}

func NewLogsService(clk clock.Clock, source logsout.BatchSource, transform logsout.SessionTransformer) *LogsService {
	return &LogsService{clock: clk, source: source, transform: transform}
}

// FetchAndAppend pulls the archived batch, transforms every record, wraps
// the result in a single entry, and prepends it. On any failure the stored
// list is left exactly as it was.
func (s *LogsService) FetchAndAppend(ctx context.Context) (domain.LogEntry, error) {
	records, err := s.source.FetchLogBatch(ctx)
	if err != nil {
		return domain.LogEntry{}, err
	}
	sessions := make([]monitordomain.Session, 0, len(records))
	anomalies := 0
	for _, rec := range records {
		sess := s.transform.Transform(rec)
		if sess.Anomalous() {
			anomalies++
		}
		sessions = append(sessions, sess)
	}

	now := s.clock.Now()
	entry := domain.LogEntry{
		ID:           fmt.Sprintf("log_%d", now.UnixMilli()),
		CapturedAt:   now,
		Timestamp:    now.Format("2006-01-02 15:04:05"),
		SessionCount: len(sessions),
		AnomalyCount: anomalies,
		Sessions:     sessions,
	}

	s.mu.Lock()
	s.entries = append([]domain.LogEntry{entry}, s.entries...)
	s.mu.Unlock()
	return entry, nil
}

// List returns a copy of the stored entries, newest first.
func (s *LogsService) List() []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Filter applies the case-insensitive id/timestamp match over the stored
// list without touching it.
func (s *LogsService) Filter(query string) []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Filter(s.entries, query)
}
