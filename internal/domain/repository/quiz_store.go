package repository

import (
	"github.com/yourusername/quizzy-api/internal/domain/entity"
)

// QuizStore определяет операции слоя персистентности над двумя коллекциями:
// викторинами и попытками. Поиск отсутствующей викторины сигнализируется
// nil-значением, а не ошибкой — вызывающая сторона обязана проверять.
type QuizStore interface {
	// InitializeSampleData однократно заполняет пустую коллекцию викторин
	// детерминированным набором примеров. Идемпотентна после первого вызова.
	InitializeSampleData() error

	// AllQuizzes возвращает все викторины в порядке хранения (новые в начале).
	AllQuizzes() ([]entity.Quiz, error)

	// FeaturedQuizzes возвращает первые 6 викторин; меньше — если их меньше.
	FeaturedQuizzes() ([]entity.Quiz, error)

	// MyQuizzes возвращает викторины текущего пользователя.
	// Однопользовательский режим: эквивалентна AllQuizzes.
	MyQuizzes() ([]entity.Quiz, error)

	// QuizByID возвращает викторину по ID или (nil, nil), если её нет.
	QuizByID(id string) (*entity.Quiz, error)

	// SaveQuiz выполняет upsert по ID: замена на месте с обновлением
	// UpdatedAt (таймстемп отражается и в переданном объекте) либо
	// вставка в начало коллекции.
	SaveQuiz(quiz *entity.Quiz) error

	// DeleteQuiz удаляет викторину; отсутствие записи не является ошибкой.
	DeleteQuiz(id string) error

	// DuplicateQuiz создает и сохраняет глубокую копию викторины со свежими
	// идентификаторами, суффиксом " (Copy)" и обнулённым счётчиком попыток.
	// Возвращает (nil, nil), если оригинал не найден.
	DuplicateQuiz(id string) (*entity.Quiz, error)

	// SaveQuizAttempt дописывает попытку и увеличивает счётчик attempts
	// соответствующей викторины на 1. Если викторина уже удалена, попытка
	// всё равно записывается, а обновление счётчика пропускается.
	SaveQuizAttempt(attempt *entity.QuizAttempt) error

	// QuizAttempts возвращает попытки викторины в порядке добавления.
	QuizAttempts(quizID string) ([]entity.QuizAttempt, error)
}
