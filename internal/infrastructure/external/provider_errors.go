package external

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

// classifyAPIError maps a genai failure onto the error taxonomy. throttled is
// the kind used for HTTP 429 / RESOURCE_EXHAUSTED.
func classifyAPIError(op string, throttled apperrors.Kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.New(apperrors.Canceled, op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.New(apperrors.TimedOut, op, err)
	}

	code, status, ok := apiErrorDetails(err)
	if ok && (code == 429 || strings.EqualFold(status, "RESOURCE_EXHAUSTED")) {
		return apperrors.New(throttled, op, err)
	}

	return apperrors.New(apperrors.GenerationFailed, op, err)
}

func apiErrorDetails(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Status, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Status, true
	}
	return 0, "", false
}
