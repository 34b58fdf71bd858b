package services

import (
	"context"
	stderrors "errors"
	"strings"

	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

// classify leaves already classified errors alone and otherwise decides
// between throttling (reported as the given kind) and a generic failure.
func classify(op string, throttled apperrors.Kind, err error) error {
	if err == nil {
		return nil
	}

	var classified *apperrors.Error
	if stderrors.As(err, &classified) {
		return err
	}

	switch {
	case stderrors.Is(err, context.Canceled):
		return apperrors.New(apperrors.Canceled, op, err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return apperrors.New(apperrors.TimedOut, op, err)
	case isThrottleError(err):
		return apperrors.New(throttled, op, err)
	default:
		return apperrors.New(apperrors.GenerationFailed, op, err)
	}
}

func isThrottleError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted") ||
		strings.Contains(errStr, "error 429") ||
		strings.Contains(errStr, "too many requests")
}
