package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"evwatch/internal/modules/monitor/domain"
	monitorout "evwatch/internal/modules/monitor/port/out"
	apperrors "evwatch/internal/platform/errors"
	"evwatch/internal/platform/id"
)

// MonitorService owns the record-to-session transformation and the upload
// flow. It holds no session state; the dashboard's Board does.
type MonitorService struct {
	charger id.ChargerTagger
	gateway monitorout.AnalysisGateway
}

func NewMonitorService(charger id.ChargerTagger, gateway monitorout.AnalysisGateway) *MonitorService {
	return &MonitorService{charger: charger, gateway: gateway}
}

// Transform maps one backend record into a dashboard session. Deterministic
// given the record, except for the charger-tag fallback drawn from the
// injected tagger when the backend omits a station id.
func (s *MonitorService) Transform(rec domain.AnomalyRecord) domain.Session {
	category, status, score := domain.Classify(rec.AnomalyType)

	chargerID := rec.ChargingStationID
	if chargerID == "" {
		chargerID = s.charger.ChargerTag()
	}
	userID := rec.UserID
	if userID == "" {
		userID = "Unknown"
	}

	session := domain.Session{
		SessionID: rec.SessionID,
		ChargerID: chargerID,
		UserID:    userID,
		Score:     score,
		Category:  category,
		Status:    status,
	}
	if ts, err := parseTimestamp(rec.Timestamp); err == nil {
		session.StartedAt = ts
		session.StartClock = ts.Local().Format("15:04:05")
	}
	if rec.DurationMin != nil {
		session.DurationMin = *rec.DurationMin
	}
	if rec.EnergyConsumed != nil {
		session.EnergyKWh = *rec.EnergyConsumed
	}
	if rec.AmountBilled != nil {
		payment := *rec.AmountBilled
		session.Payment = &payment
	}
	return session
}

// parseTimestamp accepts RFC 3339 as well as the offset-less ISO form the
// backend emits. The naive form carries no zone, so it is read as local time.
func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local)
}

// TransformBatch transforms a whole batch preserving order.
func (s *MonitorService) TransformBatch(records []domain.AnomalyRecord) []domain.Session {
	out := make([]domain.Session, 0, len(records))
	for _, rec := range records {
		out = append(out, s.Transform(rec))
	}
	return out
}

// AnalyzeFile uploads a CSV for analysis and transforms the report. The
// filename check runs before the file is even opened, so a rejected upload
// cannot touch the network.
func (s *MonitorService) AnalyzeFile(ctx context.Context, path string) (domain.AnalysisReport, []domain.Session, error) {
	if strings.TrimSpace(path) == "" {
		return domain.AnalysisReport{}, nil, fmt.Errorf("%w: file path is required", apperrors.ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return domain.AnalysisReport{}, nil, domain.ErrNotCSV
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.AnalysisReport{}, nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	report, err := s.gateway.SubmitForAnalysis(ctx, filepath.Base(path), f)
	if err != nil {
		return domain.AnalysisReport{}, nil, err
	}
	return report, s.TransformBatch(report.Anomalies), nil
}
