package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда викторина, сессия или попытка не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных
	// (правила редактора: количество вариантов, ровно один правильный и т.д.).
	ErrValidation = errors.New("validation failed")

	// ErrMalformedInput используется, когда полезная нагрузка ответа не декодируется.
	// Обработчик переводит её в навигационный fallback на страницу старта викторины.
	ErrMalformedInput = errors.New("malformed input")

	// ErrConflict используется для конфликтов состояния сессии
	// (например, ответ после показа обратной связи или запрос результатов
	// незавершённой сессии).
	ErrConflict = errors.New("resource state conflict")
)
