package entity

// SessionState состояние интерактивной сессии
type SessionState string

const (
	StateAwaitingImage SessionState = "awaiting_image" // Изображение ещё не загружено
	StateProcessing    SessionState = "processing"     // Идёт анализ
	StateReady         SessionState = "ready"          // Есть актуальный результат
	StateFailed        SessionState = "failed"         // Последний анализ не удался
)

// Session текущее состояние анализа: конфигурация, изображение и последний результат.
type Session struct {
	ID        int64
	State     SessionState
	Config    Configuration
	Image     *ImageBuffer
	ImageName string
	Result    *AnalysisResult // последний успешный результат
	LastError string          // сообщение о последней неудаче
}

// NewSession создаёт сессию с конфигурацией по умолчанию
func NewSession(id int64) *Session {
	return &Session{
		ID:     id,
		State:  StateAwaitingImage,
		Config: DefaultConfiguration(),
	}
}

// SetState обновляет состояние сессии
func (s *Session) SetState(state SessionState) {
	s.State = state
}
