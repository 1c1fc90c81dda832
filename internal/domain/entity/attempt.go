package entity

import "time"

// AnswerMap отображает идентификатор вопроса в идентификатор выбранного
// варианта (для true-false — литералы "true"/"false"). Отсутствующий ключ
// означает "без ответа".
type AnswerMap map[string]string

// Clone возвращает независимую копию карты ответов
func (m AnswerMap) Clone() AnswerMap {
	clone := make(AnswerMap, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// QuizAttempt представляет запись об одном завершённом прохождении викторины.
// Создаётся ровно один раз на сессию и никогда не изменяется.
// Ссылка на викторину слабая: удаление викторины не удаляет её попытки.
type QuizAttempt struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	SessionID      string    `json:"sessionId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
	AnswersData    AnswerMap `json:"answersData"`
}
