package apperrors

import "errors"

// ErrInvalidInput marks a request rejected before any work happened.
// Handlers match it with errors.Is to report usage mistakes distinctly
// from runtime failures.
var ErrInvalidInput = errors.New("invalid input")
