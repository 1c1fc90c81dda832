package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	"github.com/yourusername/quizzy-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// Categories — фиксированный список категорий каталога
var Categories = []string{
	"All", "Science", "History", "Technology", "Sports", "Entertainment",
	"Literature", "Education", "Health", "Misc",
}

// CategoryAll — значение фильтра "все категории"
const CategoryAll = "All"

// QuizService предоставляет операции авторинга и каталога викторин
type QuizService struct {
	store repository.QuizStore
}

// NewQuizService создает новый сервис викторин
func NewQuizService(store repository.QuizStore) *QuizService {
	return &QuizService{store: store}
}

// CreateQuiz валидирует и сохраняет новую викторину. Идентификаторы викторины
// и вопросов/вариантов без ID генерируются автоматически.
func (s *QuizService) CreateQuiz(quiz *entity.Quiz) (*entity.Quiz, error) {
	now := time.Now().UTC()
	quiz = quiz.Clone()
	quiz.ID = uuid.NewString()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	quiz.Attempts = 0
	assignQuestionIDs(quiz)

	if err := ValidateQuiz(quiz); err != nil {
		return nil, err
	}

	if err := s.store.SaveQuiz(quiz); err != nil {
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}

	log.Printf("[QuizService] Викторина %s создана (%d вопросов)", quiz.ID, len(quiz.Questions))
	return quiz, nil
}

// UpdateQuiz заменяет существующую викторину, сохраняя её CreatedAt и счётчик
// попыток. Возвращает apperrors.ErrNotFound, если викторины нет.
func (s *QuizService) UpdateQuiz(id string, quiz *entity.Quiz) (*entity.Quiz, error) {
	existing, err := s.store.QuizByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("quiz %s: %w", id, apperrors.ErrNotFound)
	}

	quiz = quiz.Clone()
	quiz.ID = existing.ID
	quiz.CreatedAt = existing.CreatedAt
	quiz.Attempts = existing.Attempts
	assignQuestionIDs(quiz)

	if err := ValidateQuiz(quiz); err != nil {
		return nil, err
	}

	if err := s.store.SaveQuiz(quiz); err != nil {
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}
	return quiz, nil
}

// DeleteQuiz удаляет викторину. Отсутствие записи не является ошибкой.
func (s *QuizService) DeleteQuiz(id string) error {
	return s.store.DeleteQuiz(id)
}

// DuplicateQuiz создает копию викторины.
// Возвращает apperrors.ErrNotFound, если оригинала нет.
func (s *QuizService) DuplicateQuiz(id string) (*entity.Quiz, error) {
	duplicate, err := s.store.DuplicateQuiz(id)
	if err != nil {
		return nil, err
	}
	if duplicate == nil {
		return nil, fmt.Errorf("quiz %s: %w", id, apperrors.ErrNotFound)
	}

	log.Printf("[QuizService] Викторина %s дублирована, новый ID %s", id, duplicate.ID)
	return duplicate, nil
}

// QuizByID возвращает викторину по ID или apperrors.ErrNotFound
func (s *QuizService) QuizByID(id string) (*entity.Quiz, error) {
	quiz, err := s.store.QuizByID(id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, fmt.Errorf("quiz %s: %w", id, apperrors.ErrNotFound)
	}
	return quiz, nil
}

// BrowseQuizzes возвращает викторины каталога, отфильтрованные по поисковой
// строке (подстрока в title/description без учёта регистра) и категории
func (s *QuizService) BrowseQuizzes(search, category string) ([]entity.Quiz, error) {
	quizzes, err := s.store.AllQuizzes()
	if err != nil {
		return nil, err
	}

	if search == "" && (category == "" || category == CategoryAll) {
		return quizzes, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]entity.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if needle != "" &&
			!strings.Contains(strings.ToLower(quiz.Title), needle) &&
			!strings.Contains(strings.ToLower(quiz.Description), needle) {
			continue
		}
		if category != "" && category != CategoryAll && quiz.Category != category {
			continue
		}
		filtered = append(filtered, quiz)
	}
	return filtered, nil
}

// FeaturedQuizzes возвращает викторины для главной страницы
func (s *QuizService) FeaturedQuizzes() ([]entity.Quiz, error) {
	return s.store.FeaturedQuizzes()
}

// MyQuizzes возвращает викторины текущего пользователя (однопользовательский режим)
func (s *QuizService) MyQuizzes() ([]entity.Quiz, error) {
	return s.store.MyQuizzes()
}

// assignQuestionIDs генерирует идентификаторы для вопросов и вариантов,
// у которых они не заданы редактором
func assignQuestionIDs(quiz *entity.Quiz) {
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		if question.ID == "" {
			question.ID = uuid.NewString()
		}
		if question.Type == entity.QuestionTypeTrueFalse {
			continue // идентификаторы "true"/"false" фиксированы
		}
		for j := range question.Options {
			if question.Options[j].ID == "" {
				question.Options[j].ID = uuid.NewString()
			}
		}
	}
}

// ValidateQuiz проверяет правила редактора: непустой заголовок, у каждого
// вопроса непустой текст, ровно один правильный вариант, multiple-choice
// имеет от 2 до 6 вариантов, true-false — ровно два с фиксированными
// идентификаторами, лимит времени (если задан) положителен.
func ValidateQuiz(quiz *entity.Quiz) error {
	if strings.TrimSpace(quiz.Title) == "" {
		return fmt.Errorf("quiz title is required: %w", apperrors.ErrValidation)
	}

	seenQuestionIDs := make(map[string]struct{}, len(quiz.Questions))
	for i := range quiz.Questions {
		question := &quiz.Questions[i]

		if _, dup := seenQuestionIDs[question.ID]; dup {
			return fmt.Errorf("duplicate question id %s: %w", question.ID, apperrors.ErrValidation)
		}
		seenQuestionIDs[question.ID] = struct{}{}

		if strings.TrimSpace(question.QuestionText) == "" {
			return fmt.Errorf("question #%d: text is required: %w", i+1, apperrors.ErrValidation)
		}
		if question.TimeLimit != nil && *question.TimeLimit <= 0 {
			return fmt.Errorf("question #%d: time limit must be positive: %w", i+1, apperrors.ErrValidation)
		}

		switch question.Type {
		case entity.QuestionTypeMultipleChoice:
			if len(question.Options) < entity.MinChoiceOptions || len(question.Options) > entity.MaxChoiceOptions {
				return fmt.Errorf("question #%d: multiple-choice needs %d-%d options: %w",
					i+1, entity.MinChoiceOptions, entity.MaxChoiceOptions, apperrors.ErrValidation)
			}
		case entity.QuestionTypeTrueFalse:
			if len(question.Options) != 2 ||
				question.Options[0].ID != entity.TrueFalseOptionTrue ||
				question.Options[1].ID != entity.TrueFalseOptionFalse {
				return fmt.Errorf("question #%d: true-false options must be exactly \"true\" and \"false\": %w",
					i+1, apperrors.ErrValidation)
			}
		default:
			return fmt.Errorf("question #%d: unknown type %q: %w", i+1, question.Type, apperrors.ErrValidation)
		}

		correctCount := 0
		seenOptionIDs := make(map[string]struct{}, len(question.Options))
		for j := range question.Options {
			option := &question.Options[j]
			if _, dup := seenOptionIDs[option.ID]; dup {
				return fmt.Errorf("question #%d: duplicate option id %s: %w", i+1, option.ID, apperrors.ErrValidation)
			}
			seenOptionIDs[option.ID] = struct{}{}
			if option.IsCorrect {
				correctCount++
			}
		}
		if correctCount != 1 {
			return fmt.Errorf("question #%d: exactly one option must be correct, got %d: %w",
				i+1, correctCount, apperrors.ErrValidation)
		}
	}

	return nil
}
