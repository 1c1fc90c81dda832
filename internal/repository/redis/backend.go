package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// Backend реализует repository.BlobBackend поверх Redis.
// Каждая коллекция хранится как один JSON-блоб под своим ключом —
// прямой аналог браузерного key-value хранилища оригинального приложения.
type Backend struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewBackend создает новый Redis backend и возвращает ошибку при проблемах
func NewBackend(client redis.UniversalClient) (*Backend, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for Backend")
	}
	return &Backend{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// Get возвращает значение ключа
func (b *Backend) Get(key string) ([]byte, error) {
	data, err := b.client.Get(b.ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set записывает значение ключа без срока жизни: коллекции живут,
// пока живёт хранилище
func (b *Backend) Set(key string, data []byte) error {
	return b.client.Set(b.ctx, key, data, 0).Err()
}

// Available проверяет доступность Redis
func (b *Backend) Available() bool {
	return b.client.Ping(b.ctx).Err() == nil
}
