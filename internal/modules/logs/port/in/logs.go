package in

import (
	"context"

	"evwatch/internal/modules/logs/domain"
	"evwatch/internal/modules/logs/dto"
)

type Usecase interface {
	FetchAndAppend(ctx context.Context) (dto.FetchOutput, error)
	List(ctx context.Context) []domain.LogEntry
	Filter(ctx context.Context, input dto.FilterInput) []domain.LogEntry
}
