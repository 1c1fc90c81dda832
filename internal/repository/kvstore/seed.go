package kvstore

import (
	"time"

	"github.com/yourusername/quizzy-api/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

// SampleQuizzes возвращает детерминированный набор викторин для первого
// запуска. Содержимое воспроизводит примеры оригинального приложения
// байт-в-байт (идентификаторы "1"-"3"), чтобы сохранить совместимость с
// ранее записанными данными.
func SampleQuizzes() []entity.Quiz {
	return []entity.Quiz{
		{
			ID:          "1",
			Title:       "Introduction to JavaScript",
			Description: "Test your knowledge of JavaScript fundamentals including variables, functions, and basic syntax.",
			Category:    "Technology",
			IsPublic:    true,
			CreatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			Attempts:    256,
			Questions: []entity.Question{
				{
					ID:           "1-1",
					Type:         entity.QuestionTypeMultipleChoice,
					QuestionText: "Which of the following is used to declare a variable in JavaScript?",
					TimeLimit:    intPtr(30),
					Explanation:  "var, let, and const are all used to declare variables in JavaScript, with different scoping rules.",
					Options: []entity.QuestionOption{
						{ID: "1", Text: "var", IsCorrect: false},
						{ID: "2", Text: "let", IsCorrect: false},
						{ID: "3", Text: "const", IsCorrect: false},
						{ID: "4", Text: "All of the above", IsCorrect: true},
					},
				},
				{
					ID:           "1-2",
					Type:         entity.QuestionTypeTrueFalse,
					QuestionText: "JavaScript is a statically typed language.",
					TimeLimit:    nil,
					Explanation:  "JavaScript is dynamically typed, meaning variable types are determined at runtime.",
					Options: []entity.QuestionOption{
						{ID: "true", Text: "True", IsCorrect: false},
						{ID: "false", Text: "False", IsCorrect: true},
					},
				},
			},
		},
		{
			ID:          "2",
			Title:       "World Geography Quiz",
			Description: "Challenge yourself with questions about countries, capitals, and geographical features around the world.",
			Category:    "Education",
			IsPublic:    true,
			CreatedAt:   time.Date(2024, 1, 14, 15, 30, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 14, 15, 30, 0, 0, time.UTC),
			Attempts:    189,
			Questions: []entity.Question{
				{
					ID:           "2-1",
					Type:         entity.QuestionTypeMultipleChoice,
					QuestionText: "What is the capital of Australia?",
					TimeLimit:    intPtr(30),
					Explanation:  "Canberra is the capital of Australia, not Sydney or Melbourne as commonly thought.",
					Options: []entity.QuestionOption{
						{ID: "1", Text: "Sydney", IsCorrect: false},
						{ID: "2", Text: "Melbourne", IsCorrect: false},
						{ID: "3", Text: "Canberra", IsCorrect: true},
						{ID: "4", Text: "Perth", IsCorrect: false},
					},
				},
				{
					ID:           "2-2",
					Type:         entity.QuestionTypeMultipleChoice,
					QuestionText: "Which is the longest river in the world?",
					TimeLimit:    intPtr(25),
					Explanation:  "The Nile River in Africa is considered the longest river in the world at approximately 6,650 km.",
					Options: []entity.QuestionOption{
						{ID: "1", Text: "Amazon River", IsCorrect: false},
						{ID: "2", Text: "Nile River", IsCorrect: true},
						{ID: "3", Text: "Mississippi River", IsCorrect: false},
						{ID: "4", Text: "Yangtze River", IsCorrect: false},
					},
				},
			},
		},
		{
			ID:          "3",
			Title:       "Science Fundamentals",
			Description: "Basic science questions covering physics, chemistry, and biology concepts.",
			Category:    "Science",
			IsPublic:    true,
			CreatedAt:   time.Date(2024, 1, 13, 9, 15, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 1, 13, 9, 15, 0, 0, time.UTC),
			Attempts:    342,
			Questions: []entity.Question{
				{
					ID:           "3-1",
					Type:         entity.QuestionTypeMultipleChoice,
					QuestionText: "What is the chemical symbol for gold?",
					TimeLimit:    intPtr(20),
					Explanation:  "Au comes from the Latin word \"aurum\" meaning gold.",
					Options: []entity.QuestionOption{
						{ID: "1", Text: "Go", IsCorrect: false},
						{ID: "2", Text: "Gd", IsCorrect: false},
						{ID: "3", Text: "Au", IsCorrect: true},
						{ID: "4", Text: "Ag", IsCorrect: false},
					},
				},
				{
					ID:           "3-2",
					Type:         entity.QuestionTypeTrueFalse,
					QuestionText: "The human body has 206 bones.",
					TimeLimit:    intPtr(15),
					Explanation:  "An adult human skeleton typically has 206 bones.",
					Options: []entity.QuestionOption{
						{ID: "true", Text: "True", IsCorrect: true},
						{ID: "false", Text: "False", IsCorrect: false},
					},
				},
			},
		},
	}
}
