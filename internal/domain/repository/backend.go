package repository

// BlobBackend определяет методы низкоуровневого key-value хранилища,
// в котором Store держит JSON-коллекции. Реализации: in-memory (тесты),
// Redis и PostgreSQL (продакшн), headless (неинтерактивный контекст).
type BlobBackend interface {
	// Get возвращает значение ключа; apperrors.ErrNotFound, если ключ не записан.
	Get(key string) ([]byte, error)

	// Set записывает значение ключа, перезаписывая существующее.
	Set(key string, data []byte) error

	// Available сообщает, доступно ли хранилище в текущем контексте
	// исполнения. В неинтерактивном (headless) контексте чтения возвращают
	// пустые коллекции, а записи молча игнорируются.
	Available() bool
}
