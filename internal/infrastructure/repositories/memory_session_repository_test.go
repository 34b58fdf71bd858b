package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	session := entities.NewSession("abc")
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(ctx, "abc")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found != session {
		t.Errorf("Expected the saved session")
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, "abc"); err == nil {
		t.Errorf("Expected session to be deleted")
	}
}

func TestMemorySessionRepository_PurgeIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	old := entities.NewSession("old")
	_ = repo.Save(ctx, old)

	cutoff := time.Now().Add(time.Minute)
	fresh := entities.NewSession("fresh")
	_ = repo.Save(ctx, fresh)

	removed, err := repo.PurgeIdle(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("PurgeIdle() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected nothing purged, got %d", removed)
	}

	removed, _ = repo.PurgeIdle(ctx, cutoff)
	if removed != 2 {
		t.Errorf("Expected 2 sessions purged, got %d", removed)
	}
}
