package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/yourusername/quizzy-api/internal/pkg/errors"
)

// blobRow — строка таблицы blobs: одна JSON-коллекция под одним ключом
type blobRow struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName определяет имя таблицы для GORM
func (blobRow) TableName() string {
	return "blobs"
}

// Backend реализует repository.BlobBackend поверх PostgreSQL.
// Коллекции хранятся как JSONB-блобы, по строке на ключ.
type Backend struct {
	db *gorm.DB
}

// NewBackend создает новый PostgreSQL backend и применяет миграцию таблицы
func NewBackend(db *gorm.DB) (*Backend, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm.DB cannot be nil for Backend")
	}
	if err := db.AutoMigrate(&blobRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blobs table: %w", err)
	}
	return &Backend{db: db}, nil
}

// Get возвращает значение ключа
func (b *Backend) Get(key string) ([]byte, error) {
	var row blobRow
	if err := b.db.First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return row.Data, nil
}

// Set записывает значение ключа (insert либо update на конфликте ключа)
func (b *Backend) Set(key string, data []byte) error {
	row := blobRow{Key: key, Data: data, UpdatedAt: time.Now()}
	return b.db.Save(&row).Error
}

// Available проверяет доступность базы данных
func (b *Backend) Available() bool {
	sqlDB, err := b.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
