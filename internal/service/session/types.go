package session

import (
	"time"

	"github.com/yourusername/quizzy-api/internal/domain/repository"
)

// Состояния сессии прохождения викторины
const (
	StateNotStarted = "not_started"
	StateInProgress = "in_progress"
	StateCompleted  = "completed"
)

// Подсостояния текущего вопроса внутри InProgress
const (
	// SubStateAnswering — обратная связь скрыта, отсчёт идёт (если у вопроса
	// есть лимит времени)
	SubStateAnswering = "answering"
	// SubStateFeedback — ответ зафиксирован, показана правильность, отсчёт
	// остановлен
	SubStateFeedback = "feedback"
)

// Подписи кнопки навигации для текущего шага
const (
	ActionSubmitAnswer = "Submit Answer"
	ActionNextQuestion = "Next Question"
	ActionViewResults  = "View Results"
)

// Config содержит настройки движка сессий
type Config struct {
	// TickInterval — период тика отсчёта. Продакшн — секунда;
	// тесты ускоряют.
	TickInterval time.Duration

	// CompletedTTL — сколько завершённая сессия остаётся доступной для
	// повторного просмотра результатов, прежде чем будет вычищена из памяти
	CompletedTTL time.Duration

	// SweepInterval — период обхода реестра сессий при вычистке
	SweepInterval time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		TickInterval:  time.Second,
		CompletedTTL:  10 * time.Minute,
		SweepInterval: time.Minute,
	}
}

// Dependencies содержит зависимости движка сессий
type Dependencies struct {
	Store  repository.QuizStore
	Config *Config
}

// Snapshot — согласованный срез состояния сессии для слоя представления
type Snapshot struct {
	SessionID        string
	QuizID           string
	State            string
	SubState         string
	QuestionIndex    int
	TotalQuestions   int
	RemainingSeconds int  // 0 для вопросов без лимита
	Timed            bool // есть ли отсчёт у текущего вопроса
	SelectedOptionID string
	Answers          map[string]string
	ActionLabel      string
	CompletedAt      time.Time
}
