package valueobjects

import (
	"fmt"
	"net/url"
	"strings"
)

// VideoLocation is the download URI of a generated video. The provider only
// serves it when an access credential is attached.
type VideoLocation struct {
	uri string
}

func NewVideoLocation(uri string) (*VideoLocation, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("video uri cannot be empty")
	}
	if _, err := url.Parse(uri); err != nil {
		return nil, fmt.Errorf("invalid video uri: %w", err)
	}
	return &VideoLocation{uri: uri}, nil
}

func (v *VideoLocation) URI() string {
	return v.uri
}

// IsGCS reports whether the result was written to a Cloud Storage bucket (Vertex AI).
func (v *VideoLocation) IsGCS() bool {
	return strings.HasPrefix(v.uri, "gs://")
}

// WithCredential returns the URI with the API key appended as the `key` query parameter.
func (v *VideoLocation) WithCredential(apiKey string) (string, error) {
	u, err := url.Parse(v.uri)
	if err != nil {
		return "", fmt.Errorf("invalid video uri: %w", err)
	}
	q := u.Query()
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// GCSMediaURL converts gs://bucket/object into the JSON API media download URL.
func (v *VideoLocation) GCSMediaURL() (string, error) {
	if !v.IsGCS() {
		return "", fmt.Errorf("not a gcs uri: %s", v.uri)
	}
	bucket, object, ok := strings.Cut(strings.TrimPrefix(v.uri, "gs://"), "/")
	if !ok || bucket == "" || object == "" {
		return "", fmt.Errorf("malformed gcs uri: %s", v.uri)
	}
	return fmt.Sprintf("https://storage.googleapis.com/storage/v1/b/%s/o/%s?alt=media",
		url.PathEscape(bucket), url.PathEscape(object)), nil
}
