package usecase

import (
	"context"

	"evwatch/internal/modules/logs/domain"
	"evwatch/internal/modules/logs/dto"
	logsin "evwatch/internal/modules/logs/port/in"
	"evwatch/internal/modules/logs/service"
)

type Interactor struct {
	svc *service.LogsService
}

func NewInteractor(svc *service.LogsService) logsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) FetchAndAppend(ctx context.Context) (dto.FetchOutput, error) {
	entry, err := i.svc.FetchAndAppend(ctx)
	if err != nil {
		return dto.FetchOutput{}, err
	}
	return dto.FetchOutput{Entry: entry}, nil
}

func (i *Interactor) List(_ context.Context) []domain.LogEntry {
	return i.svc.List()
}

func (i *Interactor) Filter(_ context.Context, input dto.FilterInput) []domain.LogEntry {
	return i.svc.Filter(input.Query)
}
