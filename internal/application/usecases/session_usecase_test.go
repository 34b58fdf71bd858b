package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/infrastructure/repositories"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

func TestSessionUseCase_Resolve(t *testing.T) {
	uc := NewSessionUseCase(repositories.NewMemorySessionRepository())
	ctx := context.Background()

	first, created, err := uc.Resolve(ctx, "")
	if err != nil || !created {
		t.Fatalf("Resolve(\"\") = created %v, err %v", created, err)
	}

	again, created, err := uc.Resolve(ctx, string(first.ID()))
	if err != nil || created {
		t.Fatalf("Resolve(existing) = created %v, err %v", created, err)
	}
	if again != first {
		t.Errorf("Expected the same session to be returned")
	}

	tests := []struct {
		name string
		id   string
	}{
		{"malformed id", "not-a-uuid"},
		{"unknown id", "6f1c1a52-93d4-4a4e-9d0c-2a6f1f9b3e10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, created, err := uc.Resolve(ctx, tt.id)
			if err != nil || !created {
				t.Fatalf("Resolve(%q) = created %v, err %v", tt.id, created, err)
			}
			if string(session.ID()) == tt.id {
				t.Errorf("Expected a freshly issued id")
			}
		})
	}
}

func TestSessionUseCase_SelectImage(t *testing.T) {
	uc, session := newTestSession(t)

	snapshot, err := uc.SelectImage(session, ImageInput{Data: createTestPNG(t), MimeType: "image/jpeg", Description: "wireless headphones"})
	if err != nil {
		t.Fatalf("SelectImage() error = %v", err)
	}
	if snapshot.Image == nil || snapshot.Image.MimeType() != "image/png" {
		t.Errorf("Expected the detected media type to win")
	}
	if snapshot.Description != "wireless headphones" {
		t.Errorf("Unexpected description %q", snapshot.Description)
	}

	invalid := []ImageInput{
		{},
		{Data: []byte("not an image"), MimeType: "image/png"},
	}
	for _, input := range invalid {
		if _, err := uc.SelectImage(session, input); !apperrors.IsKind(err, apperrors.InvalidInput) {
			t.Errorf("Expected invalid input, got %v", err)
		}
	}
}

func TestSessionUseCase_Reset(t *testing.T) {
	uc, session := newTestSession(t)
	if _, err := uc.SelectImage(session, ImageInput{Data: createTestJPEG(t), Description: "d"}); err != nil {
		t.Fatalf("SelectImage() error = %v", err)
	}

	soft := uc.Reset(session, false)
	if soft.Image == nil || soft.ScriptState != entities.ScriptIdle {
		t.Errorf("Soft reset should keep the image and be idle")
	}

	hard := uc.Reset(session, true)
	if hard.Image != nil || hard.Description != "" {
		t.Errorf("Hard reset should drop image and description")
	}
}

func TestSessionUseCase_PurgeIdle(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	uc := NewSessionUseCase(repo)
	session, _, _ := uc.Resolve(context.Background(), "")

	uc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	removed, err := uc.PurgeIdle(context.Background(), 2*time.Hour)
	if err != nil {
		t.Fatalf("PurgeIdle() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 purged session, got %d", removed)
	}
	if _, err := repo.FindByID(context.Background(), session.ID()); err == nil {
		t.Errorf("Purged session should be gone")
	}
}
