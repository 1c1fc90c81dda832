package memory

import (
	"sync"

	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// Backend — in-memory реализация repository.BlobBackend.
// Используется в тестах и в дев-режиме без внешнего хранилища.
type Backend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewBackend создает новый in-memory backend
func NewBackend() *Backend {
	return &Backend{
		data: make(map[string][]byte),
	}
}

// Get возвращает значение ключа
func (b *Backend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.data[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	// Возвращаем копию, чтобы вызывающая сторона не могла изменить хранимое значение
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set записывает значение ключа
func (b *Backend) Set(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	b.data[key] = stored
	return nil
}

// Available всегда true: in-memory хранилище доступно в любом контексте
func (b *Backend) Available() bool {
	return true
}
