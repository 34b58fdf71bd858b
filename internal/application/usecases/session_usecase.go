package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	"github.com/GitNimay/ai-add-generator/internal/domain/repositories"
	"github.com/GitNimay/ai-add-generator/internal/domain/valueobjects"
	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

type SessionUseCase struct {
	sessionRepo repositories.SessionRepository
	now         func() time.Time
}

func NewSessionUseCase(sessionRepo repositories.SessionRepository) *SessionUseCase {
	return &SessionUseCase{
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

// ImageInput is an uploaded product image as received from the browser.
type ImageInput struct {
	Data        []byte
	MimeType    string
	Description string
}

// Resolve returns the session for id, creating a new one when id is empty,
// malformed or unknown. created reports whether a new id was issued.
func (uc *SessionUseCase) Resolve(ctx context.Context, id string) (session *entities.Session, created bool, err error) {
	if _, parseErr := uuid.Parse(id); parseErr == nil {
		session, err = uc.sessionRepo.FindByID(ctx, entities.SessionID(id))
		if err == nil {
			session.Touch()
			return session, false, nil
		}
		slog.Debug("Session not found, issuing a new one", "session", id, "error", err)
	}

	session = entities.NewSession(entities.SessionID(uuid.NewString()))
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("Session created", "session", session.ID())
	return session, true, nil
}

// SelectImage validates the upload and makes it the session's product image.
func (uc *SessionUseCase) SelectImage(session *entities.Session, input ImageInput) (entities.SessionSnapshot, error) {
	image, err := toImageData(input)
	if err != nil {
		return session.Snapshot(), err
	}

	if err := session.SelectImage(image, input.Description); err != nil {
		return session.Snapshot(), err
	}

	slog.Info("Image selected", "session", session.ID(), "format", image.Format(), "bytes", image.Size())
	return session.Snapshot(), nil
}

// Reset returns the session to idle. A hard reset also drops the image.
func (uc *SessionUseCase) Reset(session *entities.Session, hard bool) entities.SessionSnapshot {
	session.Reset(hard)
	slog.Info("Session reset", "session", session.ID(), "hard", hard)
	return session.Snapshot()
}

// PurgeIdle removes sessions idle for longer than ttl.
func (uc *SessionUseCase) PurgeIdle(ctx context.Context, ttl time.Duration) (int, error) {
	removed, err := uc.sessionRepo.PurgeIdle(ctx, uc.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Info("Purged idle sessions", "count", removed)
	}
	return removed, nil
}

func toImageData(input ImageInput) (*valueobjects.ImageData, error) {
	if len(input.Data) == 0 {
		return nil, apperrors.Newf(apperrors.InvalidInput, "session.select_image", "please select a product image")
	}

	image, err := valueobjects.NewImageData(input.Data, input.MimeType)
	if err != nil {
		return nil, apperrors.New(apperrors.InvalidInput, "session.select_image", err)
	}
	return image, nil
}
