package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// Session — конечный автомат одного прохождения викторины:
// NotStarted → InProgress(index, Answering|Feedback) → Completed.
// Все переходы происходят под мьютексом; отсчёт времени для текущего
// вопроса живёт в отдельной горутине и отменяется при любом переходе
// из подсостояния Answering, поэтому просроченный таймер не может
// сработать после смены вопроса.
type Session struct {
	ID   string
	Quiz *entity.Quiz

	cfg     *Config
	baseCtx context.Context

	mu          sync.Mutex
	state       string
	subState    string
	index       int
	answers     entity.AnswerMap
	remaining   int
	epoch       int // поколение вопроса: страхует от срабатывания устаревшего тика
	cancelTimer context.CancelFunc
	completedAt time.Time
	// attemptSaved гарантирует, что QuizAttempt будет записан ровно один раз
	// на сессию, сколько бы раз ни открывали страницу результатов
	attemptSaved bool
}

// newSession создает сессию в состоянии NotStarted
func newSession(ctx context.Context, id string, quiz *entity.Quiz, cfg *Config) *Session {
	return &Session{
		ID:      id,
		Quiz:    quiz,
		cfg:     cfg,
		baseCtx: ctx,
		state:   StateNotStarted,
		answers: make(entity.AnswerMap),
	}
}

// Start переводит сессию NotStarted → InProgress(0, Answering) и запускает
// отсчёт первого вопроса (вопрос без лимита времени не отсчитывается).
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return fmt.Errorf("session %s already started: %w", s.ID, apperrors.ErrConflict)
	}

	s.state = StateInProgress
	s.subState = SubStateAnswering
	s.index = 0
	s.startCountdownLocked()
	return nil
}

// SelectAnswer записывает (или перезаписывает) выбор респондента для
// текущего вопроса. Допустим только в подсостоянии Answering.
func (s *Session) SelectAnswer(questionID, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return fmt.Errorf("session %s is not in progress: %w", s.ID, apperrors.ErrConflict)
	}
	if s.subState != SubStateAnswering {
		// Ответ уже зафиксирован, обратная связь показана
		return fmt.Errorf("answer is locked for the current question: %w", apperrors.ErrConflict)
	}

	question := &s.Quiz.Questions[s.index]
	if questionID != question.ID {
		return fmt.Errorf("question %s is not the current question: %w", questionID, apperrors.ErrConflict)
	}
	if question.OptionByID(optionID) == nil {
		return fmt.Errorf("option %s does not belong to question %s: %w", optionID, questionID, apperrors.ErrMalformedInput)
	}

	s.answers[questionID] = optionID
	return nil
}

// Submit переводит текущий вопрос Answering → Feedback и останавливает
// отсчёт. Если ответ ещё не выбран — ничего не делает (элемент навигации
// обязан блокировать Submit до выбора ответа).
func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return fmt.Errorf("session %s is not in progress: %w", s.ID, apperrors.ErrConflict)
	}
	if s.subState != SubStateAnswering {
		return nil
	}
	if _, answered := s.answers[s.Quiz.Questions[s.index].ID]; !answered {
		return nil
	}

	s.stopCountdownLocked()
	s.subState = SubStateFeedback
	return nil
}

// Next из подсостояния Feedback переходит к следующему вопросу либо,
// если текущий вопрос последний, завершает сессию.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return fmt.Errorf("session %s is not in progress: %w", s.ID, apperrors.ErrConflict)
	}
	if s.subState != SubStateFeedback {
		return fmt.Errorf("feedback is not showing for the current question: %w", apperrors.ErrConflict)
	}

	s.advanceLocked()
	return nil
}

// Previous возвращается к предыдущему вопросу. Допустим только при index > 0.
// Отсчёт перезапускается с полного лимита вопроса: возврат к вопросу всегда
// выдает свежий таймер, прошедшее время не восстанавливается.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return fmt.Errorf("session %s is not in progress: %w", s.ID, apperrors.ErrConflict)
	}
	if s.index == 0 {
		return fmt.Errorf("already at the first question: %w", apperrors.ErrConflict)
	}

	s.stopCountdownLocked()
	s.index--
	s.subState = SubStateAnswering
	s.startCountdownLocked()
	return nil
}

// Close отменяет таймеры сессии. Состояние при этом не персистится:
// прерванная сессия просто отбрасывается.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCountdownLocked()
}

// IsCompleted проверяет, завершена ли сессия
func (s *Session) IsCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateCompleted
}

// Answers возвращает копию итоговой карты ответов.
// Вопрос, оставшийся без ответа, в карте отсутствует.
func (s *Session) Answers() entity.AnswerMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// MarkAttemptSaved атомарно помечает, что попытка для сессии записана.
// Возвращает true только при первом вызове.
func (s *Session) MarkAttemptSaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attemptSaved {
		return false
	}
	s.attemptSaved = true
	return true
}

// Snapshot возвращает согласованный срез состояния для слоя представления
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:      s.ID,
		QuizID:         s.Quiz.ID,
		State:          s.state,
		SubState:       s.subState,
		QuestionIndex:  s.index,
		TotalQuestions: len(s.Quiz.Questions),
		Answers:        s.answers.Clone(),
		CompletedAt:    s.completedAt,
	}

	if s.state == StateInProgress {
		question := &s.Quiz.Questions[s.index]
		snap.Timed = question.IsTimed()
		snap.RemainingSeconds = s.remaining
		snap.SelectedOptionID = s.answers[question.ID]

		switch {
		case s.subState == SubStateAnswering:
			snap.ActionLabel = ActionSubmitAnswer
		case s.index == len(s.Quiz.Questions)-1:
			snap.ActionLabel = ActionViewResults
		default:
			snap.ActionLabel = ActionNextQuestion
		}
	}

	return snap
}

// advanceLocked переходит к следующему вопросу или завершает сессию.
// Вызывается под мьютексом — из Next и из истёкшего таймера.
func (s *Session) advanceLocked() {
	s.stopCountdownLocked()

	if s.index >= len(s.Quiz.Questions)-1 {
		s.state = StateCompleted
		s.subState = ""
		s.completedAt = time.Now().UTC()
		log.Printf("[Session] Сессия %s завершена: отвечено %d из %d вопросов",
			s.ID, len(s.answers), len(s.Quiz.Questions))
		return
	}

	s.index++
	s.subState = SubStateAnswering
	s.startCountdownLocked()
}

// startCountdownLocked запускает отсчёт для текущего вопроса.
// Вопрос без лимита времени не отсчитывается и не авто-переключается.
func (s *Session) startCountdownLocked() {
	question := &s.Quiz.Questions[s.index]
	if !question.IsTimed() {
		s.remaining = 0
		return
	}

	s.remaining = question.TimeLimitSeconds()
	s.epoch++

	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancelTimer = cancel

	go s.runCountdown(ctx, s.epoch)
}

// stopCountdownLocked отменяет текущий отсчёт, если он запущен
func (s *Session) stopCountdownLocked() {
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
}

// runCountdown тикает раз в TickInterval и уменьшает оставшееся время.
// Когда отсчёт доходит до нуля в подсостоянии Answering, сессия ведёт себя
// как при вызове Next: авто-переход, вопрос без ответа остаётся без ответа.
// Проверка epoch гарантирует, что тик устаревшего поколения ничего не делает.
func (s *Session) runCountdown(ctx context.Context, epoch int) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.handleTick(epoch) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleTick обрабатывает один тик; возвращает true, когда горутине отсчёта
// пора завершиться
func (s *Session) handleTick(epoch int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || s.state != StateInProgress || s.subState != SubStateAnswering {
		return true
	}

	s.remaining--
	if s.remaining > 0 {
		return false
	}

	log.Printf("[Session] Сессия %s: время вопроса %d истекло, авто-переход",
		s.ID, s.index+1)
	s.advanceLocked()
	return true
}
