package headless

import (
	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// Backend — заглушка repository.BlobBackend для неинтерактивного контекста
// исполнения (аналог серверного рендеринга без браузерного хранилища):
// все чтения возвращают "не найдено", все записи молча игнорируются.
type Backend struct{}

// NewBackend создает headless backend
func NewBackend() *Backend {
	return &Backend{}
}

// Get всегда сообщает об отсутствии ключа
func (b *Backend) Get(key string) ([]byte, error) {
	return nil, apperrors.ErrNotFound
}

// Set молча игнорирует запись
func (b *Backend) Set(key string, data []byte) error {
	return nil
}

// Available всегда false
func (b *Backend) Available() bool {
	return false
}
