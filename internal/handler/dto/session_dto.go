package dto

import (
	"time"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	"github.com/yourusername/quizzy-api/internal/service/session"
)

// FeedbackResponse — блок обратной связи по зафиксированному ответу.
// Отдается только в подсостоянии feedback: до фиксации ответа правильный
// вариант и пояснение клиенту не видны.
type FeedbackResponse struct {
	IsCorrect       bool   `json:"isCorrect"`
	CorrectOptionID string `json:"correctOptionId"`
	Explanation     string `json:"explanation,omitempty"`
}

// SessionStateResponse представляет состояние сессии прохождения
type SessionStateResponse struct {
	SessionID        string            `json:"sessionId"`
	QuizID           string            `json:"quizId"`
	State            string            `json:"state"`
	SubState         string            `json:"subState,omitempty"`
	QuestionIndex    int               `json:"questionIndex"`
	TotalQuestions   int               `json:"totalQuestions"`
	Question         *QuestionResponse `json:"question,omitempty"`
	SelectedOptionID string            `json:"selectedOptionId,omitempty"`
	Timed            bool              `json:"timed"`
	RemainingSeconds int               `json:"remainingSeconds"`
	ActionLabel      string            `json:"actionLabel,omitempty"`
	CanGoBack        bool              `json:"canGoBack"`
	Feedback         *FeedbackResponse `json:"feedback,omitempty"`
	CompletedAt      *time.Time        `json:"completedAt,omitempty"`
}

// ReviewResponse представляет разбор одного вопроса на странице результатов
type ReviewResponse struct {
	QuestionID        string `json:"questionId"`
	QuestionText      string `json:"questionText"`
	Answered          bool   `json:"answered"`
	IsCorrect         bool   `json:"isCorrect"`
	UserAnswerText    string `json:"userAnswerText"`
	CorrectAnswerText string `json:"correctAnswerText"`
	Explanation       string `json:"explanation,omitempty"`
}

// SessionResultsResponse представляет страницу результатов прохождения
type SessionResultsResponse struct {
	SessionID          string              `json:"sessionId"`
	Quiz               QuizSummaryResponse `json:"quiz"`
	Score              int                 `json:"score"`
	TotalQuestions     int                 `json:"totalQuestions"`
	Percentage         int                 `json:"percentage"`
	PerformanceMessage string              `json:"performanceMessage"`
	Reviews            []ReviewResponse    `json:"reviews"`
}

// NewSessionStateResponse собирает DTO состояния из снимка сессии.
// Текущий вопрос отдается в игровом представлении (без правильных ответов);
// обратная связь добавляется отдельным блоком после фиксации ответа.
func NewSessionStateResponse(sess *session.Session) *SessionStateResponse {
	snap := sess.Snapshot()

	resp := &SessionStateResponse{
		SessionID:        snap.SessionID,
		QuizID:           snap.QuizID,
		State:            snap.State,
		SubState:         snap.SubState,
		QuestionIndex:    snap.QuestionIndex,
		TotalQuestions:   snap.TotalQuestions,
		SelectedOptionID: snap.SelectedOptionID,
		Timed:            snap.Timed,
		RemainingSeconds: snap.RemainingSeconds,
		ActionLabel:      snap.ActionLabel,
		CanGoBack:        snap.State == session.StateInProgress && snap.QuestionIndex > 0,
	}

	if snap.State == session.StateInProgress {
		question := sess.Quiz.QuestionByID(sess.Quiz.Questions[snap.QuestionIndex].ID)
		questionDTO := NewQuestionResponse(question, false)
		resp.Question = &questionDTO

		if snap.SubState == session.SubStateFeedback {
			feedback := &FeedbackResponse{
				Explanation: question.Explanation,
			}
			if correct := question.CorrectOption(); correct != nil {
				feedback.CorrectOptionID = correct.ID
			}
			feedback.IsCorrect = question.IsCorrectAnswer(snap.SelectedOptionID)
			resp.Feedback = feedback
		}
	}

	if snap.State == session.StateCompleted && !snap.CompletedAt.IsZero() {
		completedAt := snap.CompletedAt
		resp.CompletedAt = &completedAt
	}

	return resp
}

// NewSessionResultsResponse собирает DTO страницы результатов
func NewSessionResultsResponse(sess *session.Session, result *entity.QuizResult, message string) *SessionResultsResponse {
	reviews := make([]ReviewResponse, len(result.Reviews))
	for i, review := range result.Reviews {
		reviews[i] = ReviewResponse{
			QuestionID:        review.QuestionID,
			QuestionText:      review.QuestionText,
			Answered:          review.Answered,
			IsCorrect:         review.IsCorrect,
			UserAnswerText:    review.UserAnswerText,
			CorrectAnswerText: review.CorrectAnswerText,
			Explanation:       review.Explanation,
		}
	}

	return &SessionResultsResponse{
		SessionID:          sess.ID,
		Quiz:               NewQuizSummaryResponse(sess.Quiz),
		Score:              result.Score,
		TotalQuestions:     result.TotalQuestions,
		Percentage:         result.Percentage,
		PerformanceMessage: message,
		Reviews:            reviews,
	}
}
