package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidItemKind   = errors.New("item kind must be event or video")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrUnknownSeatType   = errors.New("unknown seat type")
	ErrFreeItem          = errors.New("item is free, nothing to pay")
	ErrFlowNotFound      = errors.New("checkout flow not found")
	ErrInvalidTransition = errors.New("invalid checkout state transition")
	ErrNotCompleted      = errors.New("purchase is not completed")
	ErrNothingToResume   = errors.New("no pending order to resume")
)

// ValidationError reports client-side input problems per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
