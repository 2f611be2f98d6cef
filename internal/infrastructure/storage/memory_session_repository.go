package storage

import (
	"context"
	"sync"

	"fragment-analyzer/internal/domain/entity"
	"fragment-analyzer/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий анализа
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int64]*entity.Session),
	}
}

// Get возвращает сессию по ID, создаёт новую если не найдена
func (r *MemorySessionRepository) Get(ctx context.Context, sessionID int64) (*entity.Session, error) {
	r.mu.RLock()
	session, exists := r.sessions[sessionID]
	r.mu.RUnlock()

	if exists {
		return session, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Пока ждали блокировку, сессию мог создать другой вызов.
	if session, exists := r.sessions[sessionID]; exists {
		return session, nil
	}
	newSession := entity.NewSession(sessionID)
	r.sessions[sessionID] = newSession

	return newSession, nil
}

// Save сохраняет сессию целиком, заменяя прежнюю
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние сессии
func (r *MemorySessionRepository) UpdateState(ctx context.Context, sessionID int64, state entity.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, exists := r.sessions[sessionID]; exists {
		session.SetState(state)
	}

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
