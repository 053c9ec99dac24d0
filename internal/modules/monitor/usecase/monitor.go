package usecase

import (
	"context"

	"evwatch/internal/modules/monitor/dto"
	monitorin "evwatch/internal/modules/monitor/port/in"
	"evwatch/internal/modules/monitor/service"
)

type Interactor struct {
	svc *service.MonitorService
}

func NewInteractor(svc *service.MonitorService) monitorin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AnalyzeFile(ctx context.Context, input dto.AnalyzeFileInput) (dto.AnalysisOutput, error) {
	report, sessions, err := i.svc.AnalyzeFile(ctx, input.Path)
	if err != nil {
		return dto.AnalysisOutput{}, err
	}
	return dto.AnalysisOutput{
		Filename:       report.Filename,
		TotalSessions:  report.TotalSessions,
		AnomaliesFound: report.AnomaliesFound,
		Sessions:       sessions,
	}, nil
}
