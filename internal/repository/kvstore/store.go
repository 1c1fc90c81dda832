package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	"github.com/yourusername/quizzy-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// Ключи коллекций в blob-хранилище.
// Совпадают с ключами браузерного хранилища оригинального приложения,
// чтобы сохранить совместимость с ранее записанными данными.
const (
	quizzesKey  = "quizzy_quizzes"
	attemptsKey = "quizzy_attempts"
)

// FeaturedLimit — количество викторин на главной странице
const FeaturedLimit = 6

// Store реализует repository.QuizStore поверх произвольного BlobBackend.
// Циклы чтение-изменение-запись сериализуются мьютексом, поэтому счётчик
// attempts обновляется атомарно вместе с добавлением попытки.
type Store struct {
	backend repository.BlobBackend
	mu      sync.Mutex
}

// NewStore создает новый Store
func NewStore(backend repository.BlobBackend) *Store {
	return &Store{backend: backend}
}

// InitializeSampleData однократно заполняет пустую коллекцию викторин
// примерами. Идемпотентна: если коллекция уже записана, ничего не делает.
func (s *Store) InitializeSampleData() error {
	if !s.backend.Available() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.initializeSampleDataLocked()
}

func (s *Store) initializeSampleDataLocked() error {
	_, err := s.backend.Get(quizzesKey)
	if err == nil {
		// Коллекция уже записана (пусть даже пустым списком)
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check quizzes collection: %w", err)
	}

	if err := s.saveQuizzesLocked(SampleQuizzes()); err != nil {
		return fmt.Errorf("failed to seed sample quizzes: %w", err)
	}

	log.Printf("[Store] Коллекция викторин заполнена примерами (%d шт.)", len(SampleQuizzes()))
	return nil
}

// AllQuizzes возвращает все викторины в порядке хранения.
// В headless-контексте возвращает пустой список.
func (s *Store) AllQuizzes() ([]entity.Quiz, error) {
	if !s.backend.Available() {
		return []entity.Quiz{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.initializeSampleDataLocked(); err != nil {
		return nil, err
	}
	return s.loadQuizzesLocked(), nil
}

// FeaturedQuizzes возвращает первые FeaturedLimit викторин
func (s *Store) FeaturedQuizzes() ([]entity.Quiz, error) {
	quizzes, err := s.AllQuizzes()
	if err != nil {
		return nil, err
	}
	if len(quizzes) > FeaturedLimit {
		quizzes = quizzes[:FeaturedLimit]
	}
	return quizzes, nil
}

// MyQuizzes возвращает викторины текущего пользователя.
// Однопользовательский режим: все викторины считаются принадлежащими
// пользователю, фильтрация по OwnerID появится вместе с мультипользовательским
// режимом.
func (s *Store) MyQuizzes() ([]entity.Quiz, error) {
	return s.AllQuizzes()
}

// QuizByID возвращает викторину по ID или (nil, nil), если её нет
func (s *Store) QuizByID(id string) (*entity.Quiz, error) {
	quizzes, err := s.AllQuizzes()
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, nil
}

// SaveQuiz выполняет upsert по ID: существующая викторина заменяется на месте
// с обновлением UpdatedAt, новая вставляется в начало коллекции (новые — первыми).
// Свежий UpdatedAt проставляется в переданный объект, чтобы вызывающая сторона
// видела тот же таймстемп, что и хранилище.
// В headless-контексте запись молча игнорируется.
func (s *Store) SaveQuiz(quiz *entity.Quiz) error {
	if !s.backend.Available() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.initializeSampleDataLocked(); err != nil {
		return err
	}

	quizzes := s.loadQuizzesLocked()
	replaced := false
	for i := range quizzes {
		if quizzes[i].ID == quiz.ID {
			quiz.UpdatedAt = time.Now().UTC()
			quizzes[i] = *quiz.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		quizzes = append([]entity.Quiz{*quiz.Clone()}, quizzes...)
	}

	return s.saveQuizzesLocked(quizzes)
}

// DeleteQuiz удаляет викторину; отсутствие записи не является ошибкой
func (s *Store) DeleteQuiz(id string) error {
	if !s.backend.Available() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.initializeSampleDataLocked(); err != nil {
		return err
	}

	quizzes := s.loadQuizzesLocked()
	filtered := quizzes[:0]
	for i := range quizzes {
		if quizzes[i].ID != id {
			filtered = append(filtered, quizzes[i])
		}
	}

	return s.saveQuizzesLocked(filtered)
}

// DuplicateQuiz создает глубокую копию викторины: свежий ID, идентификаторы
// вопросов перегенерируются на основе исходных (во избежание коллизий),
// заголовок получает суффикс " (Copy)", счётчик попыток обнуляется,
// таймстемпы свежие. Копия сохраняется и возвращается.
// Возвращает (nil, nil), если оригинал не найден.
func (s *Store) DuplicateQuiz(id string) (*entity.Quiz, error) {
	original, err := s.QuizByID(id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	duplicate := original.Clone()
	duplicate.ID = uuid.NewString()
	duplicate.Title = original.Title + " (Copy)"
	duplicate.Attempts = 0
	duplicate.CreatedAt = now
	duplicate.UpdatedAt = now
	for i := range duplicate.Questions {
		duplicate.Questions[i].ID = fmt.Sprintf("%s-%s", duplicate.ID, original.Questions[i].ID)
	}

	if err := s.SaveQuiz(duplicate); err != nil {
		return nil, err
	}
	return duplicate, nil
}

// SaveQuizAttempt дописывает попытку в коллекцию и увеличивает счётчик
// attempts соответствующей викторины на 1. Обе коллекции записываются под
// одним мьютексом. Если викторина была удалена, попытка всё равно
// записывается, а обновление счётчика пропускается.
func (s *Store) SaveQuizAttempt(attempt *entity.QuizAttempt) error {
	if !s.backend.Available() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.loadAttemptsLocked()
	attempts = append(attempts, *attempt)
	if err := s.saveAttemptsLocked(attempts); err != nil {
		return err
	}

	quizzes := s.loadQuizzesLocked()
	for i := range quizzes {
		if quizzes[i].ID == attempt.QuizID {
			quizzes[i].Attempts++
			return s.saveQuizzesLocked(quizzes)
		}
	}

	log.Printf("[Store] Викторина %s удалена, счётчик попыток не обновлён", attempt.QuizID)
	return nil
}

// QuizAttempts возвращает попытки викторины в порядке добавления
func (s *Store) QuizAttempts(quizID string) ([]entity.QuizAttempt, error) {
	if !s.backend.Available() {
		return []entity.QuizAttempt{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadAttemptsLocked()
	attempts := make([]entity.QuizAttempt, 0, len(all))
	for i := range all {
		if all[i].QuizID == quizID {
			attempts = append(attempts, all[i])
		}
	}
	return attempts, nil
}

// loadQuizzesLocked читает коллекцию викторин. Отсутствующий или
// некорректный блоб деградирует до пустой коллекции.
func (s *Store) loadQuizzesLocked() []entity.Quiz {
	data, err := s.backend.Get(quizzesKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[Store] Ошибка чтения коллекции викторин: %v", err)
		}
		return []entity.Quiz{}
	}

	var quizzes []entity.Quiz
	if err := json.Unmarshal(data, &quizzes); err != nil {
		log.Printf("[Store] Коллекция викторин повреждена, используется пустая: %v", err)
		return []entity.Quiz{}
	}
	return quizzes
}

func (s *Store) saveQuizzesLocked(quizzes []entity.Quiz) error {
	data, err := json.Marshal(quizzes)
	if err != nil {
		return fmt.Errorf("failed to marshal quizzes: %w", err)
	}
	return s.backend.Set(quizzesKey, data)
}

func (s *Store) loadAttemptsLocked() []entity.QuizAttempt {
	data, err := s.backend.Get(attemptsKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[Store] Ошибка чтения коллекции попыток: %v", err)
		}
		return []entity.QuizAttempt{}
	}

	var attempts []entity.QuizAttempt
	if err := json.Unmarshal(data, &attempts); err != nil {
		log.Printf("[Store] Коллекция попыток повреждена, используется пустая: %v", err)
		return []entity.QuizAttempt{}
	}
	return attempts
}

func (s *Store) saveAttemptsLocked(attempts []entity.QuizAttempt) error {
	data, err := json.Marshal(attempts)
	if err != nil {
		return fmt.Errorf("failed to marshal attempts: %w", err)
	}
	return s.backend.Set(attemptsKey, data)
}
