package out

import (
	"context"
	"io"

	"evwatch/internal/modules/monitor/domain"
)

// AnalysisGateway is the backend boundary. Both calls are pass-through: no
// retries, no caching, no state held on this side.
type AnalysisGateway interface {
	SubmitForAnalysis(ctx context.Context, filename string, file io.Reader) (domain.AnalysisReport, error)
	FetchLogBatch(ctx context.Context) ([]domain.AnomalyRecord, error)
}
