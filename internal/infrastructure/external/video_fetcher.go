package external

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

const defaultVideoContentType = "video/mp4"

// HTTPVideoFetcher downloads generated videos. Gemini API results need the API
// key appended to the URI; Vertex AI results live in Cloud Storage and need a
// bearer token.
type HTTPVideoFetcher struct {
	httpClient  *http.Client
	apiKey      string
	tokenSource oauth2.TokenSource
}

func NewHTTPVideoFetcher(httpClient *http.Client, apiKey string, tokenSource oauth2.TokenSource) repositories.VideoFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPVideoFetcher{
		httpClient:  httpClient,
		apiKey:      apiKey,
		tokenSource: tokenSource,
	}
}

func (f *HTTPVideoFetcher) Fetch(ctx context.Context, location *valueobjects.VideoLocation) (io.ReadCloser, string, error) {
	if location == nil {
		return nil, "", apperrors.Newf(apperrors.MissingResult, "video.fetch", "no video to fetch")
	}

	req, err := f.newRequest(ctx, location)
	if err != nil {
		return nil, "", apperrors.New(apperrors.GenerationFailed, "video.fetch", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", apperrors.New(apperrors.GenerationFailed, "video.fetch", fmt.Errorf("failed to download video: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		kind := apperrors.GenerationFailed
		if resp.StatusCode == http.StatusTooManyRequests {
			kind = apperrors.QuotaExceeded
		}
		return nil, "", apperrors.Newf(kind, "video.fetch", "download failed (status %d): %s", resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = defaultVideoContentType
	}

	return resp.Body, contentType, nil
}

func (f *HTTPVideoFetcher) newRequest(ctx context.Context, location *valueobjects.VideoLocation) (*http.Request, error) {
	if location.IsGCS() {
		target, err := location.GCSMediaURL()
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if err := f.authorize(req); err != nil {
			return nil, err
		}
		return req, nil
	}

	target := location.URI()
	if f.apiKey != "" {
		withKey, err := location.WithCredential(f.apiKey)
		if err != nil {
			return nil, err
		}
		target = withKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.apiKey == "" && f.tokenSource != nil {
		if err := f.authorize(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (f *HTTPVideoFetcher) authorize(req *http.Request) error {
	if f.tokenSource == nil {
		return fmt.Errorf("no credentials available for %s", req.URL.Host)
	}
	token, err := f.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}
	token.SetAuthHeader(req)
	return nil
}
