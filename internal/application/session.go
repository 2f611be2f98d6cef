package app

import (
	"context"
	"errors"
	"log/slog"

	"fragment-analyzer/internal/domain/entity"
	"fragment-analyzer/internal/domain/port"
)

var (
	// ErrNoImage возвращается, когда для сессии ещё не загружено изображение.
	ErrNoImage = errors.New("no image loaded")
	// ErrNoResult возвращается, пока ни один анализ не завершился успешно.
	ErrNoResult = errors.New("no successful analysis yet")
)

// SessionService хранит текущую конфигурацию и изображение и пересчитывает
// результат целиком после каждого изменения.
type SessionService struct {
	repo     port.SessionRepository
	analysis *AnalysisService
	logger   *slog.Logger
}

func NewSessionService(repo port.SessionRepository, analysis *AnalysisService, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{repo: repo, analysis: analysis, logger: logger}
}

func (s *SessionService) Get(ctx context.Context, sessionID int64) (*entity.Session, error) {
	return s.repo.Get(ctx, sessionID)
}

// LoadImage заменяет изображение сессии и запускает анализ.
func (s *SessionService) LoadImage(ctx context.Context, sessionID int64, name string, img *entity.ImageBuffer) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Image = img
	session.ImageName = name
	return s.recompute(ctx, session)
}

// SetOption меняет один параметр и пересчитывает результат.
// Некорректный параметр не меняет конфигурацию.
func (s *SessionService) SetOption(ctx context.Context, sessionID int64, name, value string) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cfg, err := ApplyOption(session.Config, name, value)
	if err != nil {
		return session, err
	}
	session.Config = cfg
	return s.recompute(ctx, session)
}

// SetConfig заменяет конфигурацию целиком.
func (s *SessionService) SetConfig(ctx context.Context, sessionID int64, cfg entity.Configuration) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Config = cfg.Normalize()
	return s.recompute(ctx, session)
}

// Reset возвращает параметры к значениям по умолчанию.
func (s *SessionService) Reset(ctx context.Context, sessionID int64) (*entity.Session, error) {
	return s.SetConfig(ctx, sessionID, entity.DefaultConfiguration())
}

// recompute без изображения только сохраняет сессию. При неудаче прошлый
// успешный результат остаётся, сообщение об ошибке записывается в LastError.
func (s *SessionService) recompute(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	if session.Image == nil {
		session.SetState(entity.StateAwaitingImage)
		return session, s.repo.Save(ctx, session)
	}

	session.SetState(entity.StateProcessing)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	result, err := s.analysis.Analyze(ctx, session.Image, session.Config)
	if err != nil {
		s.logger.Warn("analysis failed, keeping previous result", "session_id", session.ID, "err", err)
		session.LastError = FormatFailure(err)
		session.SetState(entity.StateFailed)
		if saveErr := s.repo.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return session, err
	}

	session.Result = result
	session.LastError = ""
	session.SetState(entity.StateReady)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RequireResult возвращает последний успешный результат сессии.
func (s *SessionService) RequireResult(ctx context.Context, sessionID int64) (*entity.Session, *entity.AnalysisResult, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Image == nil {
		return session, nil, ErrNoImage
	}
	if session.Result == nil {
		return session, nil, ErrNoResult
	}
	return session, session.Result, nil
}
