package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
	"github.com/yourusername/quizzy-api/internal/repository/kvstore"
	"github.com/yourusername/quizzy-api/internal/repository/memory"
)

func intPtr(v int) *int {
	return &v
}

func newQuizService(t *testing.T) (*QuizService, *kvstore.Store) {
	t.Helper()
	store := kvstore.NewStore(memory.NewBackend())
	require.NoError(t, store.InitializeSampleData())
	return NewQuizService(store), store
}

func validQuiz() *entity.Quiz {
	return &entity.Quiz{
		Title:       "Go Basics",
		Description: "Syntax and tooling",
		Category:    "Technology",
		IsPublic:    true,
		Questions: []entity.Question{
			{
				Type:         entity.QuestionTypeMultipleChoice,
				QuestionText: "Which keyword declares a variable?",
				Options: []entity.QuestionOption{
					{Text: "var", IsCorrect: true},
					{Text: "dim"},
				},
				TimeLimit: intPtr(20),
			},
			{
				Type:         entity.QuestionTypeTrueFalse,
				QuestionText: "Go has classes.",
				Options: []entity.QuestionOption{
					{ID: entity.TrueFalseOptionTrue, Text: "True"},
					{ID: entity.TrueFalseOptionFalse, Text: "False", IsCorrect: true},
				},
			},
		},
	}
}

// ============================================================================
// Создание и обновление
// ============================================================================

func TestCreateQuiz_GeneratesIDs(t *testing.T) {
	svc, _ := newQuizService(t)

	created, err := svc.CreateQuiz(validQuiz())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Attempts)
	assert.False(t, created.CreatedAt.IsZero())

	// Идентификаторы вопросов и вариантов сгенерированы
	for _, q := range created.Questions {
		assert.NotEmpty(t, q.ID)
		for _, o := range q.Options {
			assert.NotEmpty(t, o.ID)
		}
	}

	// Викторина действительно сохранена
	loaded, err := svc.QuizByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", loaded.Title)
}

func TestCreateQuiz_DoesNotMutateInput(t *testing.T) {
	svc, _ := newQuizService(t)

	input := validQuiz()
	_, err := svc.CreateQuiz(input)
	require.NoError(t, err)

	assert.Empty(t, input.ID)
	assert.Empty(t, input.Questions[0].ID)
}

func TestUpdateQuiz_PreservesCreatedAtAndAttempts(t *testing.T) {
	svc, store := newQuizService(t)

	created, err := svc.CreateQuiz(validQuiz())
	require.NoError(t, err)

	require.NoError(t, store.SaveQuizAttempt(&entity.QuizAttempt{ID: "a1", QuizID: created.ID}))

	edited := validQuiz()
	edited.Title = "Go Basics, 2nd edition"
	updated, err := svc.UpdateQuiz(created.ID, edited)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 1, updated.Attempts)
	assert.Equal(t, "Go Basics, 2nd edition", updated.Title)

	// Возвращаемое значение несёт свежий UpdatedAt, совпадающий с сохранённым
	assert.False(t, updated.UpdatedAt.IsZero())
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	reloaded, err := svc.QuizByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, reloaded.UpdatedAt, updated.UpdatedAt)
}

func TestUpdateQuiz_Missing(t *testing.T) {
	svc, _ := newQuizService(t)

	_, err := svc.UpdateQuiz("no-such-quiz", validQuiz())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDuplicateQuiz_Missing(t *testing.T) {
	svc, _ := newQuizService(t)

	_, err := svc.DuplicateQuiz("no-such-quiz")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuizByID_Missing(t *testing.T) {
	svc, _ := newQuizService(t)

	_, err := svc.QuizByID("no-such-quiz")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// Валидация редактора
// ============================================================================

func TestValidateQuiz(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *entity.Quiz)
		wantErr string
	}{
		{
			name:   "valid quiz passes",
			mutate: func(q *entity.Quiz) {},
		},
		{
			name:    "empty title",
			mutate:  func(q *entity.Quiz) { q.Title = "   " },
			wantErr: "title is required",
		},
		{
			name:    "empty question text",
			mutate:  func(q *entity.Quiz) { q.Questions[0].QuestionText = "" },
			wantErr: "text is required",
		},
		{
			name:    "zero time limit",
			mutate:  func(q *entity.Quiz) { q.Questions[0].TimeLimit = intPtr(0) },
			wantErr: "time limit must be positive",
		},
		{
			name: "too few options",
			mutate: func(q *entity.Quiz) {
				q.Questions[0].Options = q.Questions[0].Options[:1]
			},
			wantErr: "needs 2-6 options",
		},
		{
			name: "too many options",
			mutate: func(q *entity.Quiz) {
				for len(q.Questions[0].Options) <= entity.MaxChoiceOptions {
					q.Questions[0].Options = append(q.Questions[0].Options,
						entity.QuestionOption{ID: uuidLike(len(q.Questions[0].Options)), Text: "x"})
				}
			},
			wantErr: "needs 2-6 options",
		},
		{
			name: "no correct option",
			mutate: func(q *entity.Quiz) {
				q.Questions[0].Options[0].IsCorrect = false
			},
			wantErr: "exactly one option must be correct",
		},
		{
			name: "two correct options",
			mutate: func(q *entity.Quiz) {
				q.Questions[0].Options[1].IsCorrect = true
			},
			wantErr: "exactly one option must be correct",
		},
		{
			name: "true-false with wrong option ids",
			mutate: func(q *entity.Quiz) {
				q.Questions[1].Options[0].ID = "yes"
			},
			wantErr: "true-false options",
		},
		{
			name: "unknown question type",
			mutate: func(q *entity.Quiz) {
				q.Questions[0].Type = "essay"
			},
			wantErr: "unknown type",
		},
		{
			name: "duplicate question ids",
			mutate: func(q *entity.Quiz) {
				q.Questions[0].ID = "same"
				q.Questions[1].ID = "same"
			},
			wantErr: "duplicate question id",
		},
		{
			name: "duplicate option ids",
			mutate: func(q *entity.Quiz) {
				q.Questions[0].Options[0].ID = "dup"
				q.Questions[0].Options[1].ID = "dup"
			},
			wantErr: "duplicate option id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := validQuiz()
			// Валидация ожидает уже проставленные идентификаторы
			quiz.Questions[0].ID = "q1"
			quiz.Questions[0].Options[0].ID = "o1"
			quiz.Questions[0].Options[1].ID = "o2"
			quiz.Questions[1].ID = "q2"

			tt.mutate(quiz)
			err := ValidateQuiz(quiz)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func uuidLike(i int) string {
	return string(rune('a' + i))
}

// ============================================================================
// Каталог
// ============================================================================

func TestBrowseQuizzes(t *testing.T) {
	svc, _ := newQuizService(t)

	all, err := svc.BrowseQuizzes("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Поиск по подстроке без учёта регистра, по title и description
	found, err := svc.BrowseQuizzes("JAVASCRIPT", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0].ID)

	// Фильтр по категории
	science, err := svc.BrowseQuizzes("", "Science")
	require.NoError(t, err)
	require.Len(t, science, 1)
	assert.Equal(t, "3", science[0].ID)

	// Категория "All" не фильтрует
	allAgain, err := svc.BrowseQuizzes("", CategoryAll)
	require.NoError(t, err)
	assert.Len(t, allAgain, 3)

	// Комбинация поиска и категории
	none, err := svc.BrowseQuizzes("javascript", "Science")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFeaturedQuizzes_Limited(t *testing.T) {
	svc, _ := newQuizService(t)

	// Добиваем каталог сверх лимита главной страницы
	for i := 0; i < kvstore.FeaturedLimit; i++ {
		_, err := svc.CreateQuiz(validQuiz())
		require.NoError(t, err)
	}

	featured, err := svc.FeaturedQuizzes()
	require.NoError(t, err)
	assert.Len(t, featured, kvstore.FeaturedLimit)
}
