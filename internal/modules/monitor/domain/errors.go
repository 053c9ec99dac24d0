package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotCSV rejects an upload before any file or network I/O happens.
	ErrNotCSV = errors.New("only .csv files are accepted")

	// ErrBackendUnreachable marks a transport failure: the request was sent
	// but no response came back. The UI turns this into "is the backend
	// running" guidance rather than a raw dial error.
	ErrBackendUnreachable = errors.New("anomaly backend unreachable")
)

// ServerError carries a response the backend did send, status and detail
// included. It is distinct from ErrBackendUnreachable so callers can word
// their guidance differently for the two failure kinds.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
}
