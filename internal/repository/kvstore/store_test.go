package kvstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	"github.com/yourusername/quizzy-api/internal/repository/headless"
	"github.com/yourusername/quizzy-api/internal/repository/memory"
)

func newTestStore(t *testing.T) (*Store, *memory.Backend) {
	t.Helper()
	backend := memory.NewBackend()
	return NewStore(backend), backend
}

func testQuiz(id, title string) *entity.Quiz {
	return &entity.Quiz{
		ID:    id,
		Title: title,
		Questions: []entity.Question{
			{
				ID:           id + "-q1",
				Type:         entity.QuestionTypeTrueFalse,
				QuestionText: "Water boils at 100°C at sea level.",
				Options: []entity.QuestionOption{
					{ID: entity.TrueFalseOptionTrue, Text: "True", IsCorrect: true},
					{ID: entity.TrueFalseOptionFalse, Text: "False"},
				},
			},
		},
	}
}

// ============================================================================
// Инициализация примерами
// ============================================================================

func TestInitializeSampleData_SeedsOnce(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.InitializeSampleData())

	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	require.Len(t, quizzes, 3)
	assert.Equal(t, "1", quizzes[0].ID)
	assert.Equal(t, "Introduction to JavaScript", quizzes[0].Title)

	// Повторная инициализация идемпотентна
	require.NoError(t, store.InitializeSampleData())
	quizzes, err = store.AllQuizzes()
	require.NoError(t, err)
	assert.Len(t, quizzes, 3)
}

func TestInitializeSampleData_DoesNotReseedEmptyCollection(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())

	// Удаляем все примеры: коллекция записана пустым списком
	for _, q := range SampleQuizzes() {
		require.NoError(t, store.DeleteQuiz(q.ID))
	}

	// Инициализация не восстанавливает примеры поверх пустой коллекции
	require.NoError(t, store.InitializeSampleData())
	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestAllQuizzes_TriggersSeed(t *testing.T) {
	store, _ := newTestStore(t)

	// Первое чтение само инициализирует коллекцию
	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	assert.Len(t, quizzes, 3)
}

// ============================================================================
// Upsert и удаление
// ============================================================================

func TestSaveQuiz_NewQuizGoesFirst(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())

	quiz := testQuiz("new-1", "Fresh Quiz")
	require.NoError(t, store.SaveQuiz(quiz))

	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	require.Len(t, quizzes, 4)
	// Новые викторины встают в начало коллекции
	assert.Equal(t, "new-1", quizzes[0].ID)
}

func TestSaveQuiz_UpsertReplacesInPlace(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())

	original, err := store.QuizByID("2")
	require.NoError(t, err)
	require.NotNil(t, original)

	updated := original.Clone()
	updated.Title = "World Geography Quiz v2"
	require.NoError(t, store.SaveQuiz(updated))

	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	require.Len(t, quizzes, 3)

	// Позиция сохраняется, UpdatedAt обновляется
	assert.Equal(t, "2", quizzes[1].ID)
	assert.Equal(t, "World Geography Quiz v2", quizzes[1].Title)
	assert.True(t, quizzes[1].UpdatedAt.After(original.UpdatedAt))

	// Свежий таймстемп виден и в переданном объекте: сохранённая викторина
	// deep-equal записанной, включая UpdatedAt
	assert.Equal(t, quizzes[1].UpdatedAt, updated.UpdatedAt)
	assert.Equal(t, *updated, quizzes[1])
}

func TestDeleteQuiz(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())

	require.NoError(t, store.DeleteQuiz("2"))

	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)

	quiz, err := store.QuizByID("2")
	require.NoError(t, err)
	assert.Nil(t, quiz)

	// Повторное удаление не является ошибкой
	require.NoError(t, store.DeleteQuiz("2"))
}

func TestQuizByID_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	quiz, err := store.QuizByID("no-such-quiz")
	require.NoError(t, err)
	assert.Nil(t, quiz)
}

// ============================================================================
// Дублирование
// ============================================================================

func TestDuplicateQuiz(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())

	original, err := store.QuizByID("1")
	require.NoError(t, err)
	require.NotNil(t, original)

	duplicate, err := store.DuplicateQuiz("1")
	require.NoError(t, err)
	require.NotNil(t, duplicate)

	assert.NotEqual(t, original.ID, duplicate.ID)
	assert.Equal(t, original.Title+" (Copy)", duplicate.Title)
	assert.Equal(t, 0, duplicate.Attempts)
	assert.Len(t, duplicate.Questions, len(original.Questions))

	// Идентификаторы вопросов производные от исходных: новых коллизий нет
	for i := range duplicate.Questions {
		assert.Equal(t, duplicate.ID+"-"+original.Questions[i].ID, duplicate.Questions[i].ID)
		assert.Equal(t, original.Questions[i].QuestionText, duplicate.Questions[i].QuestionText)
	}

	// Копия сохранена и находится в начале коллекции
	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	require.Len(t, quizzes, 4)
	assert.Equal(t, duplicate.ID, quizzes[0].ID)

	// Оригинал не изменился
	reloaded, err := store.QuizByID("1")
	require.NoError(t, err)
	assert.Equal(t, original.Title, reloaded.Title)
}

func TestDuplicateQuiz_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	duplicate, err := store.DuplicateQuiz("no-such-quiz")
	require.NoError(t, err)
	assert.Nil(t, duplicate)
}

// ============================================================================
// Попытки
// ============================================================================

func TestSaveQuizAttempt_IncrementsCounter(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())

	before, err := store.QuizByID("1")
	require.NoError(t, err)
	require.NotNil(t, before)

	attempt := &entity.QuizAttempt{
		ID:             "attempt-1",
		QuizID:         "1",
		SessionID:      "sess-1",
		Score:          4,
		TotalQuestions: 5,
		AnswersData:    entity.AnswerMap{"1-1": "b"},
	}
	require.NoError(t, store.SaveQuizAttempt(attempt))

	after, err := store.QuizByID("1")
	require.NoError(t, err)
	assert.Equal(t, before.Attempts+1, after.Attempts)

	attempts, err := store.QuizAttempts("1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "attempt-1", attempts[0].ID)
	assert.Equal(t, 4, attempts[0].Score)
}

func TestSaveQuizAttempt_QuizDeleted(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())
	require.NoError(t, store.DeleteQuiz("3"))

	// Попытка записывается даже для удалённой викторины
	attempt := &entity.QuizAttempt{ID: "attempt-x", QuizID: "3", TotalQuestions: 4}
	require.NoError(t, store.SaveQuizAttempt(attempt))

	attempts, err := store.QuizAttempts("3")
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}

func TestQuizAttempts_FiltersByQuiz(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.InitializeSampleData())

	require.NoError(t, store.SaveQuizAttempt(&entity.QuizAttempt{ID: "a1", QuizID: "1"}))
	require.NoError(t, store.SaveQuizAttempt(&entity.QuizAttempt{ID: "a2", QuizID: "2"}))
	require.NoError(t, store.SaveQuizAttempt(&entity.QuizAttempt{ID: "a3", QuizID: "1"}))

	attempts, err := store.QuizAttempts("1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	// Порядок добавления сохраняется
	assert.Equal(t, "a1", attempts[0].ID)
	assert.Equal(t, "a3", attempts[1].ID)
}

// ============================================================================
// Деградация
// ============================================================================

func TestCorruptedBlob_DegradesToEmpty(t *testing.T) {
	store, backend := newTestStore(t)

	require.NoError(t, backend.Set("quizzy_quizzes", []byte("{not json")))

	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	assert.Empty(t, quizzes)

	// Запись поверх повреждённого блоба восстанавливает коллекцию
	require.NoError(t, store.SaveQuiz(testQuiz("fresh", "Fresh")))
	quizzes, err = store.AllQuizzes()
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "fresh", quizzes[0].ID)
}

func TestHeadlessBackend_NoOps(t *testing.T) {
	store := NewStore(headless.NewBackend())

	require.NoError(t, store.InitializeSampleData())

	// Чтения пусты, записи молча игнорируются
	quizzes, err := store.AllQuizzes()
	require.NoError(t, err)
	assert.Empty(t, quizzes)

	require.NoError(t, store.SaveQuiz(testQuiz("h1", "Headless")))
	quiz, err := store.QuizByID("h1")
	require.NoError(t, err)
	assert.Nil(t, quiz)

	require.NoError(t, store.SaveQuizAttempt(&entity.QuizAttempt{ID: "a1", QuizID: "h1"}))
	attempts, err := store.QuizAttempts("h1")
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

// ============================================================================
// Примеры
// ============================================================================

func TestSampleQuizzes_Shape(t *testing.T) {
	samples := SampleQuizzes()
	require.Len(t, samples, 3)

	ids := make([]string, 0, len(samples))
	for _, quiz := range samples {
		ids = append(ids, quiz.ID)

		assert.NotEmpty(t, quiz.Title)
		assert.True(t, quiz.IsPublic)
		require.NotEmpty(t, quiz.Questions, "quiz %s", quiz.ID)

		for _, q := range quiz.Questions {
			assert.True(t, strings.HasPrefix(q.ID, quiz.ID+"-"), "question %s", q.ID)
			require.NotNil(t, q.CorrectOption(), "question %s", q.ID)
		}
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}
