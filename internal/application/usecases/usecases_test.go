package usecases

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	"github.com/GitNimay/ai-add-generator/internal/infrastructure/repositories"
)

type mockScriptAIService struct {
	script *entities.AdScript
	err    error
	calls  int
}

func (m *mockScriptAIService) GenerateScript(ctx context.Context, request *entities.ScriptRequest) (*entities.AdScript, error) {
	m.calls++
	return m.script, m.err
}

// mockVideoAIService finishes on the doneAfter-th status check. doneAfter < 0
// never finishes.
type mockVideoAIService struct {
	mu        sync.Mutex
	doneAfter int
	location  string
	startErr  error
	checks    int
}

func (m *mockVideoAIService) StartVideo(ctx context.Context, request *entities.VideoRequest) (*entities.VideoOperation, error) {
	if m.startErr != nil {
		return nil, m.startErr
	}
	return entities.NewVideoOperation("operations/test", false, nil), nil
}

func (m *mockVideoAIService) CheckVideo(ctx context.Context, operation *entities.VideoOperation) (*entities.VideoOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks++

	done := m.doneAfter >= 0 && m.checks >= m.doneAfter
	op := entities.NewVideoOperation(operation.Name(), done, nil)
	if done && m.location != "" {
		loc, _ := valueobjects.NewVideoLocation(m.location)
		op.SetLocation(loc)
	}
	return op, nil
}

func (m *mockVideoAIService) Close() error {
	return nil
}

type mockVideoFetcher struct {
	uri string
}

func (m *mockVideoFetcher) Fetch(ctx context.Context, location *valueobjects.VideoLocation) (io.ReadCloser, string, error) {
	m.uri = location.URI()
	return io.NopCloser(strings.NewReader("video")), "video/mp4", nil
}

func createTestJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	return buf.Bytes()
}

func createTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	return buf.Bytes()
}

func createTestScript(t *testing.T, sceneCount int) *entities.AdScript {
	t.Helper()
	scenes := make([]*entities.Scene, 0, sceneCount)
	for i := 1; i <= sceneCount; i++ {
		scenes = append(scenes, entities.NewScene(i, "studio", "product turns", entities.DialogueNone, "ambient"))
	}
	script, err := entities.NewAdScript("Pure Sound", "Hear everything.", scenes)
	if err != nil {
		t.Fatalf("Failed to create script: %v", err)
	}
	return script
}

func newTestSession(t *testing.T) (*SessionUseCase, *entities.Session) {
	t.Helper()
	sessionUseCase := NewSessionUseCase(repositories.NewMemorySessionRepository())
	session, _, err := sessionUseCase.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return sessionUseCase, session
}
