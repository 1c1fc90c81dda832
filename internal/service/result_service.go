package service

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	"github.com/yourusername/quizzy-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
	"github.com/yourusername/quizzy-api/internal/service/session"
)

// ResultService подсчитывает результаты прохождений и ведёт записи о попытках
type ResultService struct {
	store repository.QuizStore
}

// NewResultService создает новый сервис результатов
func NewResultService(store repository.QuizStore) *ResultService {
	return &ResultService{store: store}
}

// ScoreQuiz — чистая функция подсчёта: по списку вопросов и карте ответов
// определяет правильность каждого вопроса, итоговый счёт и процент.
// Детерминирована и не зависит от порядка вопросов; вопрос без ответа
// никогда не засчитывается как правильный.
func ScoreQuiz(questions []entity.Question, answers entity.AnswerMap) *entity.QuizResult {
	result := &entity.QuizResult{
		TotalQuestions: len(questions),
		Reviews:        make([]entity.QuestionReview, 0, len(questions)),
	}

	for i := range questions {
		question := &questions[i]
		answer, answered := answers[question.ID]

		review := entity.QuestionReview{
			QuestionID:     question.ID,
			QuestionText:   question.QuestionText,
			Answered:       answered,
			UserAnswerText: entity.NoAnswerText,
			Explanation:    question.Explanation,
		}

		if correct := question.CorrectOption(); correct != nil {
			review.CorrectAnswerText = correct.Text
		}
		if answered {
			if option := question.OptionByID(answer); option != nil {
				review.UserAnswerText = option.Text
			}
			review.IsCorrect = question.IsCorrectAnswer(answer)
		}
		if review.IsCorrect {
			result.Score++
		}

		result.Reviews = append(result.Reviews, review)
	}

	// Защита от деления на ноль для викторины без вопросов
	if result.TotalQuestions > 0 {
		result.Percentage = int(math.Round(100 * float64(result.Score) / float64(result.TotalQuestions)))
	}

	return result
}

// PerformanceMessage возвращает текст оценки результата по проценту
func PerformanceMessage(percentage int) string {
	switch {
	case percentage >= 90:
		return "Outstanding!"
	case percentage >= 80:
		return "Excellent work!"
	case percentage >= 70:
		return "Good job!"
	case percentage >= 60:
		return "Not bad!"
	default:
		return "Keep practicing!"
	}
}

// SessionResults пересчитывает результат завершённой сессии, заново вызывая
// подсчёт по карте ответов (готовому счёту "в транзите" не доверяем), и при
// первом обращении записывает QuizAttempt. Повторные обращения к результатам
// той же сессии не создают дубликатов попыток и не трогают счётчик.
func (s *ResultService) SessionResults(sess *session.Session) (*entity.QuizResult, error) {
	if !sess.IsCompleted() {
		return nil, fmt.Errorf("session %s is not completed: %w", sess.ID, apperrors.ErrConflict)
	}

	answers := sess.Answers()
	result := ScoreQuiz(sess.Quiz.Questions, answers)

	if sess.MarkAttemptSaved() {
		attempt := &entity.QuizAttempt{
			ID:             uuid.NewString(),
			QuizID:         sess.Quiz.ID,
			SessionID:      sess.ID,
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			CompletedAt:    sess.Snapshot().CompletedAt,
			AnswersData:    answers,
		}
		if err := s.store.SaveQuizAttempt(attempt); err != nil {
			return nil, fmt.Errorf("failed to save quiz attempt: %w", err)
		}
		log.Printf("[ResultService] Попытка %s записана: %d/%d (%d%%)",
			attempt.ID, result.Score, result.TotalQuestions, result.Percentage)
	}

	return result, nil
}

// AttemptsForQuiz возвращает попытки викторины в порядке добавления
func (s *ResultService) AttemptsForQuiz(quizID string) ([]entity.QuizAttempt, error) {
	return s.store.QuizAttempts(quizID)
}
