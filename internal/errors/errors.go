package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the user-facing layer.
type Kind int

const (
	// GenerationFailed is the catch-all for provider and parsing failures.
	GenerationFailed Kind = iota
	// Configuration is a fatal startup problem (missing credential etc.).
	Configuration
	// RateLimited means the script endpoint answered HTTP 429.
	RateLimited
	// QuotaExceeded means the video endpoint signalled 429 or resource exhaustion.
	QuotaExceeded
	// MissingResult means a completed operation carried no usable result.
	MissingResult
	// InvalidInput means the request itself was unusable.
	InvalidInput
	// Conflict means the action is not allowed in the current session state.
	Conflict
	// TimedOut means video polling exceeded the configured bound.
	TimedOut
	// Canceled means the caller abandoned the operation (e.g. reset).
	Canceled
)

// String returns the wire name of a kind
func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration_error"
	case RateLimited:
		return "rate_limited"
	case QuotaExceeded:
		return "quota_exceeded"
	case MissingResult:
		return "missing_result"
	case InvalidInput:
		return "invalid_input"
	case Conflict:
		return "conflict"
	case TimedOut:
		return "timed_out"
	case Canceled:
		return "canceled"
	default:
		return "generation_failed"
	}
}

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: RateLimited}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// New creates a classified error.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf creates a classified error from a format string.
func Newf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in the chain, or GenerationFailed.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return GenerationFailed
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRetryable reports whether a retry action makes sense for the user.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case Configuration, InvalidInput, Conflict:
		return false
	default:
		return true
	}
}

// UserMessage converts an error into the text shown inline in the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case RateLimited:
		return "You've made too many requests in a short period. Please wait a moment and try again."
	case QuotaExceeded:
		return "The video generation quota has been exceeded. Please try again later."
	case MissingResult:
		return "Video generation completed, but no video was returned. Please try again."
	case TimedOut:
		return "Video generation is taking longer than expected. Please try again."
	case Canceled:
		return "The request was canceled."
	case Configuration:
		return "The server is not configured correctly."
	case InvalidInput, Conflict:
		var e *Error
		if stderrors.As(err, &e) && e.Err != nil {
			return e.Err.Error()
		}
		return "The request could not be processed."
	default:
		return "Failed to generate content. Please check the console for details and try again."
	}
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case RateLimited, QuotaExceeded:
		return http.StatusTooManyRequests
	case MissingResult:
		return http.StatusBadGateway
	case TimedOut:
		return http.StatusGatewayTimeout
	case Canceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
