package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// Manager управляет активными сессиями прохождения викторин.
// Сессия живёт в памяти от Start до завершения или отказа от прохождения;
// до завершения ничего не персистится. Завершённые сессии удерживаются
// CompletedTTL для повторного просмотра результатов, затем вычищаются.
type Manager struct {
	deps *Dependencies
	ctx  context.Context

	sessions sync.Map // map[string]*Session
}

// NewManager создает новый менеджер сессий и запускает фоновую вычистку
// завершённых сессий.
// ctx — корневой контекст приложения: его отмена гасит таймеры всех сессий
// и останавливает вычистку.
func NewManager(ctx context.Context, deps *Dependencies) *Manager {
	if deps.Config == nil {
		deps.Config = DefaultConfig()
	}
	if deps.Config.CompletedTTL <= 0 {
		deps.Config.CompletedTTL = DefaultConfig().CompletedTTL
	}
	if deps.Config.SweepInterval <= 0 {
		deps.Config.SweepInterval = DefaultConfig().SweepInterval
	}

	m := &Manager{
		deps: deps,
		ctx:  ctx,
	}
	go m.runCleanup()
	return m
}

// StartSession загружает викторину из Store, создает сессию и запускает её.
// Возвращает apperrors.ErrNotFound, если викторины нет, и
// apperrors.ErrValidation, если в ней нет вопросов.
func (m *Manager) StartSession(quizID string) (*Session, error) {
	quiz, err := m.deps.Store.QuizByID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz %s: %w", quizID, err)
	}
	if quiz == nil {
		return nil, fmt.Errorf("quiz %s: %w", quizID, apperrors.ErrNotFound)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz %s has no questions: %w", quizID, apperrors.ErrValidation)
	}

	// Снимок викторины принадлежит сессии: параллельное редактирование
	// не влияет на идущее прохождение
	sess := newSession(m.ctx, uuid.NewString(), quiz.Clone(), m.deps.Config)
	if err := sess.Start(); err != nil {
		return nil, err
	}

	m.sessions.Store(sess.ID, sess)
	log.Printf("[SessionManager] Сессия %s запущена для викторины %s (%d вопросов)",
		sess.ID, quiz.ID, len(quiz.Questions))
	return sess, nil
}

// Session возвращает активную сессию по ID
func (m *Manager) Session(sessionID string) (*Session, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	return value.(*Session), nil
}

// Abandon прекращает сессию и отбрасывает её состояние.
// Запись о попытке для прерванной сессии не создаётся.
func (m *Manager) Abandon(sessionID string) {
	value, ok := m.sessions.LoadAndDelete(sessionID)
	if !ok {
		return
	}
	value.(*Session).Close()
	log.Printf("[SessionManager] Сессия %s прервана", sessionID)
}

// runCleanup периодически вычищает завершённые сессии, пережившие
// CompletedTTL: снимок викторины внутри сессии не должен жить до конца
// процесса.
func (m *Manager) runCleanup() {
	ticker := time.NewTicker(m.deps.Config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictExpired(time.Now().UTC())
		case <-m.ctx.Done():
			return
		}
	}
}

// evictExpired удаляет из реестра сессии, завершённые раньше, чем
// CompletedTTL назад. Активные сессии не затрагиваются.
func (m *Manager) evictExpired(now time.Time) {
	m.sessions.Range(func(key, value interface{}) bool {
		sess := value.(*Session)
		snap := sess.Snapshot()
		if snap.State != StateCompleted || now.Sub(snap.CompletedAt) < m.deps.Config.CompletedTTL {
			return true
		}
		m.sessions.Delete(key)
		sess.Close()
		log.Printf("[SessionManager] Завершённая сессия %s вычищена", snap.SessionID)
		return true
	})
}
