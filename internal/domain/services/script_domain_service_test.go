package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

type mockScriptAIService struct {
	script  *entities.AdScript
	err     error
	request *entities.ScriptRequest
}

func (m *mockScriptAIService) GenerateScript(ctx context.Context, request *entities.ScriptRequest) (*entities.AdScript, error) {
	m.request = request
	return m.script, m.err
}

func TestScriptDomainService_ProcessScript(t *testing.T) {
	script := createTestScript(t, 3)

	t.Run("successful processing", func(t *testing.T) {
		mockAI := &mockScriptAIService{script: script}

		service := NewScriptDomainService(mockAI)
		request := entities.NewScriptRequest(createTestImageData(t), "wireless headphones", "gemini-2.5-flash")
		result, err := service.ProcessScript(context.Background(), request)

		if err != nil {
			t.Fatalf("ProcessScript() error = %v", err)
		}
		if result.SceneCount() != 3 {
			t.Errorf("Expected 3 scenes, got %d", result.SceneCount())
		}
		if !strings.Contains(mockAI.request.Prompt(), "wireless headphones") {
			t.Errorf("Prompt should include the description")
		}
	})

	t.Run("prompt without description", func(t *testing.T) {
		mockAI := &mockScriptAIService{script: script}

		service := NewScriptDomainService(mockAI)
		request := entities.NewScriptRequest(createTestImageData(t), "  ", "gemini-2.5-flash")
		if _, err := service.ProcessScript(context.Background(), request); err != nil {
			t.Fatalf("ProcessScript() error = %v", err)
		}
		if strings.Contains(mockAI.request.Prompt(), "Additional product details") {
			t.Errorf("Prompt should not mention details when description is empty")
		}
	})

	t.Run("missing image", func(t *testing.T) {
		service := NewScriptDomainService(&mockScriptAIService{script: script})
		_, err := service.ProcessScript(context.Background(), entities.NewScriptRequest(nil, "", "m"))

		if !apperrors.IsKind(err, apperrors.InvalidInput) {
			t.Errorf("Expected invalid input, got %v", err)
		}
	})

	t.Run("rate limit error handling", func(t *testing.T) {
		mockAI := &mockScriptAIService{err: errors.New("Error 429, Message: Resource has been exhausted, Status: RESOURCE_EXHAUSTED")}

		service := NewScriptDomainService(mockAI)
		result, err := service.ProcessScript(context.Background(), entities.NewScriptRequest(createTestImageData(t), "", "m"))

		if result != nil {
			t.Errorf("Expected nil result on error")
		}
		if !apperrors.IsKind(err, apperrors.RateLimited) {
			t.Errorf("Expected rate limited, got %v", err)
		}
	})

	t.Run("already classified error is kept", func(t *testing.T) {
		mockAI := &mockScriptAIService{err: apperrors.New(apperrors.RateLimited, "gemini", errors.New("429"))}

		service := NewScriptDomainService(mockAI)
		_, err := service.ProcessScript(context.Background(), entities.NewScriptRequest(createTestImageData(t), "", "m"))

		if !apperrors.IsKind(err, apperrors.RateLimited) {
			t.Errorf("Expected rate limited, got %v", err)
		}
	})

	t.Run("other failures are generic", func(t *testing.T) {
		mockAI := &mockScriptAIService{err: errors.New("invalid character '}' looking for beginning of value")}

		service := NewScriptDomainService(mockAI)
		_, err := service.ProcessScript(context.Background(), entities.NewScriptRequest(createTestImageData(t), "", "m"))

		if !apperrors.IsKind(err, apperrors.GenerationFailed) {
			t.Errorf("Expected generation failed, got %v", err)
		}
	})

	t.Run("nil script is a failure", func(t *testing.T) {
		service := NewScriptDomainService(&mockScriptAIService{})
		_, err := service.ProcessScript(context.Background(), entities.NewScriptRequest(createTestImageData(t), "", "m"))

		if !apperrors.IsKind(err, apperrors.GenerationFailed) {
			t.Errorf("Expected generation failed, got %v", err)
		}
	})
}

func createTestImageData(t *testing.T) *valueobjects.ImageData {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}

	imageData, err := valueobjects.NewImageData(buf.Bytes(), "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to create test image data: %v", err)
	}

	return imageData
}

func createTestScript(t *testing.T, sceneCount int) *entities.AdScript {
	t.Helper()
	scenes := make([]*entities.Scene, sceneCount)
	for i := range scenes {
		dialogue := entities.DialogueNone
		if i == 0 {
			dialogue = "Hear everything."
		}
		scenes[i] = entities.NewScene(i+1, "Studio", "The product rotates", dialogue, "Soft beat")
	}
	script, err := entities.NewAdScript("Pure Sound", "Silence the noise", scenes)
	if err != nil {
		t.Fatalf("Failed to create script: %v", err)
	}
	return script
}
