package dto

import "evwatch/internal/modules/logs/domain"

type FetchOutput struct {
	Entry domain.LogEntry
}

type FilterInput struct {
	Query string
}
