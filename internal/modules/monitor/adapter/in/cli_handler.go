package in

import (
	"context"

	"evwatch/internal/modules/monitor/dto"
	monitorin "evwatch/internal/modules/monitor/port/in"
)

type CLIHandler struct {
	usecase monitorin.Usecase
}

func NewCLIHandler(usecase monitorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, path string) (dto.AnalysisOutput, error) {
	return h.usecase.AnalyzeFile(ctx, dto.AnalyzeFileInput{Path: path})
}

// TUIHandler exposes the usecase to the terminal UI with dto-typed inputs.
type TUIHandler struct {
	usecase monitorin.Usecase
}

func NewTUIHandler(usecase monitorin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) AnalyzeFile(ctx context.Context, input dto.AnalyzeFileInput) (dto.AnalysisOutput, error) {
	return h.usecase.AnalyzeFile(ctx, input)
}
