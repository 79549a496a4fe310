package generation

import (
	"context"
	"errors"

	"github.com/polyglot/api/internal/llm"
)

// failureReason buckets a remote error into a low-cardinality label
func failureReason(err error) string {
	switch {
	case errors.Is(err, llm.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "upstream_error"
	}
}
