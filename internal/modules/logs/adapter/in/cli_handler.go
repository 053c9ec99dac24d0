package in

import (
	"context"

	"evwatch/internal/modules/logs/dto"
	logsin "evwatch/internal/modules/logs/port/in"
)

type CLIHandler struct {
	usecase logsin.Usecase
}

func NewCLIHandler(usecase logsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Fetch(ctx context.Context) (dto.FetchOutput, error) {
	return h.usecase.FetchAndAppend(ctx)
}
