package external

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

func TestHTTPVideoFetcher_AppendsKey(t *testing.T) {
	var gotKey, gotAlt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotAlt = r.URL.Query().Get("alt")
		w.Write([]byte("MP4DATA"))
	}))
	defer server.Close()

	location, _ := valueobjects.NewVideoLocation(server.URL + "/v1beta/files/abc:download?alt=media")
	fetcher := NewHTTPVideoFetcher(server.Client(), "secret", nil)

	body, contentType, err := fetcher.Fetch(context.Background(), location)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if string(data) != "MP4DATA" {
		t.Errorf("Unexpected body %q", data)
	}
	if gotKey != "secret" || gotAlt != "media" {
		t.Errorf("Expected key and alt query parameters, got key=%q alt=%q", gotKey, gotAlt)
	}
	if contentType != "video/mp4" && contentType != "text/plain; charset=utf-8" {
		t.Errorf("Unexpected content type %q", contentType)
	}
}

func TestHTTPVideoFetcher_BearerWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("x"))
	}))
	defer server.Close()

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)})
	location, _ := valueobjects.NewVideoLocation(server.URL + "/video.mp4")
	fetcher := NewHTTPVideoFetcher(server.Client(), "", tokens)

	body, contentType, err := fetcher.Fetch(context.Background(), location)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	body.Close()

	if gotAuth != "Bearer tok" {
		t.Errorf("Expected bearer token, got %q", gotAuth)
	}
	if contentType != "video/mp4" {
		t.Errorf("octet-stream should be reported as video/mp4, got %q", contentType)
	}
}

func TestHTTPVideoFetcher_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind apperrors.Kind
	}{
		{"forbidden", http.StatusForbidden, apperrors.GenerationFailed},
		{"throttled", http.StatusTooManyRequests, apperrors.QuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			location, _ := valueobjects.NewVideoLocation(server.URL + "/v")
			_, _, err := NewHTTPVideoFetcher(server.Client(), "k", nil).Fetch(context.Background(), location)
			if !apperrors.IsKind(err, tt.wantKind) {
				t.Errorf("Expected %v, got %v", tt.wantKind, err)
			}
		})
	}

	t.Run("nil location", func(t *testing.T) {
		_, _, err := NewHTTPVideoFetcher(nil, "k", nil).Fetch(context.Background(), nil)
		if !apperrors.IsKind(err, apperrors.MissingResult) {
			t.Errorf("Expected missing result, got %v", err)
		}
	})

	t.Run("gcs without credentials", func(t *testing.T) {
		location, _ := valueobjects.NewVideoLocation("gs://bucket/video.mp4")
		_, _, err := NewHTTPVideoFetcher(nil, "", nil).Fetch(context.Background(), location)
		if err == nil {
			t.Errorf("Expected error without a token source")
		}
	})
}
