package in

import (
	"context"

	"evwatch/internal/modules/monitor/dto"
)

type Usecase interface {
	AnalyzeFile(ctx context.Context, input dto.AnalyzeFileInput) (dto.AnalysisOutput, error)
}
