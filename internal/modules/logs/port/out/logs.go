package out

import (
	"context"

	monitordomain "evwatch/internal/modules/monitor/domain"
)

// BatchSource fetches one archived batch from the backend. The monitor
// module's analysis gateway satisfies this directly.
type BatchSource interface {
	FetchLogBatch(ctx context.Context) ([]monitordomain.AnomalyRecord, error)
}

// SessionTransformer turns backend records into dashboard sessions. Satisfied
// by the monitor service so both upload and log paths share one mapping.
type SessionTransformer interface {
	Transform(record monitordomain.AnomalyRecord) monitordomain.Session
}
