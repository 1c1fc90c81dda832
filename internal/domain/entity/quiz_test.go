package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func sampleQuestion() Question {
	return Question{
		ID:           "q1",
		Type:         QuestionTypeMultipleChoice,
		QuestionText: "What is 2 + 2?",
		Options: []QuestionOption{
			{ID: "a", Text: "3"},
			{ID: "b", Text: "4", IsCorrect: true},
			{ID: "c", Text: "5"},
		},
		TimeLimit:   intPtr(30),
		Explanation: "Basic arithmetic",
	}
}

func TestQuestion_IsTimed(t *testing.T) {
	q := sampleQuestion()
	assert.True(t, q.IsTimed())
	assert.Equal(t, 30, q.TimeLimitSeconds())

	// Вопрос без лимита не отсчитывается
	q.TimeLimit = nil
	assert.False(t, q.IsTimed())
	assert.Equal(t, 0, q.TimeLimitSeconds())

	// Нулевой или отрицательный лимит приравнивается к отсутствию
	q.TimeLimit = intPtr(0)
	assert.False(t, q.IsTimed())
}

func TestQuestion_CorrectOption(t *testing.T) {
	q := sampleQuestion()

	correct := q.CorrectOption()
	require.NotNil(t, correct)
	assert.Equal(t, "b", correct.ID)

	assert.True(t, q.IsCorrectAnswer("b"))
	assert.False(t, q.IsCorrectAnswer("a"))
	assert.False(t, q.IsCorrectAnswer(""))
	assert.False(t, q.IsCorrectAnswer("missing"))
}

func TestQuestion_OptionByID(t *testing.T) {
	q := sampleQuestion()

	option := q.OptionByID("c")
	require.NotNil(t, option)
	assert.Equal(t, "5", option.Text)

	assert.Nil(t, q.OptionByID("zzz"))
}

func TestQuiz_EstimatedSeconds(t *testing.T) {
	quiz := Quiz{
		ID: "quiz-1",
		Questions: []Question{
			{ID: "q1", TimeLimit: intPtr(30)},
			{ID: "q2"}, // без лимита
			{ID: "q3", TimeLimit: intPtr(15)},
		},
	}

	assert.Equal(t, 45, quiz.EstimatedSeconds())
	assert.True(t, quiz.HasTimedQuestions())
	assert.Equal(t, 3, quiz.QuestionCount())
}

func TestQuiz_QuestionByID(t *testing.T) {
	quiz := Quiz{Questions: []Question{sampleQuestion()}}

	q := quiz.QuestionByID("q1")
	require.NotNil(t, q)
	assert.Equal(t, "What is 2 + 2?", q.QuestionText)

	assert.Nil(t, quiz.QuestionByID("q404"))
}

func TestQuiz_Clone(t *testing.T) {
	original := &Quiz{
		ID:        "quiz-1",
		Title:     "Original",
		Questions: []Question{sampleQuestion()},
	}

	clone := original.Clone()

	require.Equal(t, original, clone)

	// Глубокая копия: изменения клона не трогают оригинал
	clone.Questions[0].Options[1].Text = "mutated"
	*clone.Questions[0].TimeLimit = 99

	assert.Equal(t, "4", original.Questions[0].Options[1].Text)
	assert.Equal(t, 30, *original.Questions[0].TimeLimit)
}

func TestAnswerMap_Clone(t *testing.T) {
	answers := AnswerMap{"q1": "a"}

	clone := answers.Clone()
	clone["q2"] = "b"

	assert.Len(t, answers, 1)
	assert.Len(t, clone, 2)

	// Клонирование nil-карты дает пустую карту
	var empty AnswerMap
	assert.NotNil(t, empty.Clone())
}
