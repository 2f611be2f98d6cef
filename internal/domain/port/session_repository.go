package port

import (
	"context"

	"fragment-analyzer/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий анализа
type SessionRepository interface {
	// Get возвращает сессию по ID, создаёт новую если не найдена
	Get(ctx context.Context, sessionID int64) (*entity.Session, error)

	// Save сохраняет состояние сессии
	Save(ctx context.Context, session *entity.Session) error

	// UpdateState обновляет состояние сессии
	UpdateState(ctx context.Context, sessionID int64, state entity.SessionState) error
}
