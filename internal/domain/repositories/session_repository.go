package repositories

import (
	"context"
	"time"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entities.Session) error
	FindByID(ctx context.Context, id entities.SessionID) (*entities.Session, error)
	Delete(ctx context.Context, id entities.SessionID) error
	// PurgeIdle drops sessions not seen since the cutoff and returns how many were removed.
	PurgeIdle(ctx context.Context, cutoff time.Time) (int, error)
}
