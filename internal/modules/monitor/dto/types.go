package dto

import "evwatch/internal/modules/monitor/domain"

type AnalyzeFileInput struct {
	Path string
}

// AnalysisOutput carries the transformed result of one upload. Sessions are
// the domain value objects themselves: every surface (table, detail panel,
// CLI) shows the same twelve fields, so a mirrored struct would only
// duplicate them.
type AnalysisOutput struct {
	Filename       string
	TotalSessions  int
	AnomaliesFound int
	Sessions       []domain.Session
}
