package dto

import (
	"time"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
)

// OptionResponse представляет вариант ответа в формате для ответа клиенту.
// IsCorrect отдается только в авторском представлении.
type OptionResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"isCorrect,omitempty"`
}

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	QuestionText string           `json:"questionText"`
	Options      []OptionResponse `json:"options"`
	TimeLimit    *int             `json:"timeLimit,omitempty"`
	Explanation  string           `json:"explanation,omitempty"`
}

// QuizResponse представляет викторину с вопросами в авторском представлении
type QuizResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category,omitempty"`
	IsPublic    bool               `json:"isPublic"`
	Questions   []QuestionResponse `json:"questions"`
	Attempts    int                `json:"attempts"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// QuizSummaryResponse представляет викторину в списках каталога (без вопросов)
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	QuestionCount int       `json:"questionCount"`
	Attempts      int       `json:"attempts"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// QuizIntroResponse представляет стартовую страницу прохождения:
// сводка викторины плюс оценка длительности
type QuizIntroResponse struct {
	QuizSummaryResponse
	EstimatedSeconds int  `json:"estimatedSeconds"`
	HasTimedQuestion bool `json:"hasTimedQuestion"`
}

// AttemptResponse представляет запись о завершенном прохождении
type AttemptResponse struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	SessionID      string    `json:"sessionId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

// NewOptionResponse создает DTO варианта. includeAnswers управляет тем,
// попадает ли признак правильности в ответ.
func NewOptionResponse(o *entity.QuestionOption, includeAnswers bool) OptionResponse {
	resp := OptionResponse{
		ID:   o.ID,
		Text: o.Text,
	}
	if includeAnswers {
		isCorrect := o.IsCorrect
		resp.IsCorrect = &isCorrect
	}
	return resp
}

// NewQuestionResponse создает DTO вопроса. В игровом представлении
// (includeAnswers=false) скрываются правильные варианты и пояснение.
func NewQuestionResponse(q *entity.Question, includeAnswers bool) QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i := range q.Options {
		options[i] = NewOptionResponse(&q.Options[i], includeAnswers)
	}

	resp := QuestionResponse{
		ID:           q.ID,
		Type:         q.Type,
		QuestionText: q.QuestionText,
		Options:      options,
		TimeLimit:    q.TimeLimit,
	}
	if includeAnswers {
		resp.Explanation = q.Explanation
	}
	return resp
}

// NewQuizResponse создает полное DTO викторины (авторское представление)
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	if quiz == nil {
		return nil
	}

	questions := make([]QuestionResponse, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[i] = NewQuestionResponse(&quiz.Questions[i], true)
	}

	return &QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Category:    quiz.Category,
		IsPublic:    quiz.IsPublic,
		Questions:   questions,
		Attempts:    quiz.Attempts,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
}

// NewQuizSummaryResponse создает DTO викторины для списков
func NewQuizSummaryResponse(quiz *entity.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		Category:      quiz.Category,
		IsPublic:      quiz.IsPublic,
		QuestionCount: quiz.QuestionCount(),
		Attempts:      quiz.Attempts,
		CreatedAt:     quiz.CreatedAt,
		UpdatedAt:     quiz.UpdatedAt,
	}
}

// NewListQuizResponse создает список DTO викторин
func NewListQuizResponse(quizzes []entity.Quiz) []QuizSummaryResponse {
	response := make([]QuizSummaryResponse, len(quizzes))
	for i := range quizzes {
		response[i] = NewQuizSummaryResponse(&quizzes[i])
	}
	return response
}

// NewQuizIntroResponse создает DTO стартовой страницы прохождения
func NewQuizIntroResponse(quiz *entity.Quiz) *QuizIntroResponse {
	return &QuizIntroResponse{
		QuizSummaryResponse: NewQuizSummaryResponse(quiz),
		EstimatedSeconds:    quiz.EstimatedSeconds(),
		HasTimedQuestion:    quiz.HasTimedQuestions(),
	}
}

// NewAttemptResponse создает DTO попытки
func NewAttemptResponse(a *entity.QuizAttempt) AttemptResponse {
	return AttemptResponse{
		ID:             a.ID,
		QuizID:         a.QuizID,
		SessionID:      a.SessionID,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		CompletedAt:    a.CompletedAt,
	}
}
