package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GitNimay/ai-add-generator/internal/domain/entities"
	domainrepos "github.com/GitNimay/ai-add-generator/internal/domain/repositories"
)

// ErrSessionNotFound is returned by FindByID for unknown or purged sessions.
var ErrSessionNotFound = fmt.Errorf("session not found")

type MemorySessionRepository struct {
	sessions map[entities.SessionID]*entities.Session
	mu       sync.RWMutex
}

func NewMemorySessionRepository() domainrepos.SessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[entities.SessionID]*entities.Session),
	}
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID()] = session
	return nil
}

func (r *MemorySessionRepository) FindByID(ctx context.Context, id entities.SessionID) (*entities.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	return session, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id entities.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, exists := r.sessions[id]; exists {
		session.Reset(true)
		delete(r.sessions, id)
	}
	return nil
}

func (r *MemorySessionRepository) PurgeIdle(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.LastSeen().Before(cutoff) {
			// 進行中の動画生成もキャンセルされる
			session.Reset(true)
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
