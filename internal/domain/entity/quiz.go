package entity

import (
	"time"
)

// Типы вопросов
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
)

// Фиксированные идентификаторы вариантов для вопросов true-false
const (
	TrueFalseOptionTrue  = "true"
	TrueFalseOptionFalse = "false"
)

// Лимиты редактора для multiple-choice вопросов
const (
	MinChoiceOptions = 2
	MaxChoiceOptions = 6
)

// QuestionOption представляет один вариант ответа на вопрос.
// ID уникален в пределах списка вариантов родительского вопроса.
type QuestionOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question представляет вопрос викторины
type Question struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	QuestionText string           `json:"questionText"`
	Options      []QuestionOption `json:"options"`
	// TimeLimit — лимит времени в секундах; nil означает "без лимита"
	TimeLimit   *int   `json:"timeLimit"`
	Explanation string `json:"explanation,omitempty"`
}

// IsTimed проверяет, ограничен ли вопрос по времени
func (q *Question) IsTimed() bool {
	return q.TimeLimit != nil && *q.TimeLimit > 0
}

// TimeLimitSeconds возвращает лимит времени в секундах (0 — без лимита)
func (q *Question) TimeLimitSeconds() int {
	if !q.IsTimed() {
		return 0
	}
	return *q.TimeLimit
}

// CorrectOption возвращает вариант, помеченный как правильный.
// Инвариант "ровно один правильный вариант" обеспечивается валидацией
// на уровне сервиса; при нарушении возвращается первый помеченный.
func (q *Question) CorrectOption() *QuestionOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// OptionByID возвращает вариант по его идентификатору
func (q *Question) OptionByID(optionID string) *QuestionOption {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// IsCorrectAnswer проверяет, является ли записанный ответ правильным.
// Для true-false это прямое сравнение с литералом "true"/"false",
// для multiple-choice — сравнение идентификаторов вариантов.
func (q *Question) IsCorrectAnswer(answer string) bool {
	correct := q.CorrectOption()
	if correct == nil {
		return false
	}
	return answer == correct.ID
}

// Quiz представляет викторину
type Quiz struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPublic    bool   `json:"isPublic"`
	// OwnerID зарезервирован для мультипользовательского режима;
	// в однопользовательском режиме всегда пуст.
	OwnerID   string     `json:"ownerId,omitempty"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	// Attempts — счётчик завершённых прохождений; равен числу записей
	// QuizAttempt с соответствующим quizId.
	Attempts int `json:"attempts"`
}

// QuestionByID возвращает вопрос по его идентификатору
func (z *Quiz) QuestionByID(questionID string) *Question {
	for i := range z.Questions {
		if z.Questions[i].ID == questionID {
			return &z.Questions[i]
		}
	}
	return nil
}

// QuestionCount возвращает количество вопросов
func (z *Quiz) QuestionCount() int {
	return len(z.Questions)
}

// HasTimedQuestions проверяет, есть ли в викторине вопросы с лимитом времени
func (z *Quiz) HasTimedQuestions() bool {
	for i := range z.Questions {
		if z.Questions[i].IsTimed() {
			return true
		}
	}
	return false
}

// EstimatedSeconds возвращает суммарный лимит времени всех вопросов в секундах.
// Используется для оценки времени прохождения на стартовой странице.
func (z *Quiz) EstimatedSeconds() int {
	total := 0
	for i := range z.Questions {
		total += z.Questions[i].TimeLimitSeconds()
	}
	return total
}

// Clone создает глубокую копию викторины.
// Идентификаторы при этом НЕ перегенерируются — этим занимается Store.DuplicateQuiz.
func (z *Quiz) Clone() *Quiz {
	clone := *z
	clone.Questions = make([]Question, len(z.Questions))
	for i, q := range z.Questions {
		cq := q
		cq.Options = make([]QuestionOption, len(q.Options))
		copy(cq.Options, q.Options)
		if q.TimeLimit != nil {
			limit := *q.TimeLimit
			cq.TimeLimit = &limit
		}
		clone.Questions[i] = cq
	}
	return &clone
}
