package entity

// NoAnswerText — текст ответа для вопроса, оставшегося без ответа
const NoAnswerText = "No answer"

// QuestionReview содержит разбор одного вопроса для страницы результатов
type QuestionReview struct {
	QuestionID        string `json:"questionId"`
	QuestionText      string `json:"questionText"`
	IsCorrect         bool   `json:"isCorrect"`
	Answered          bool   `json:"answered"`
	UserAnswerText    string `json:"userAnswerText"`
	CorrectAnswerText string `json:"correctAnswerText"`
	Explanation       string `json:"explanation,omitempty"`
}

// QuizResult представляет итог прохождения викторины: счёт и поквестионный разбор
type QuizResult struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     int              `json:"percentage"`
	Reviews        []QuestionReview `json:"reviews"`
}
