package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Режимы blob-хранилища
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	// StorageHeadless — неинтерактивный контекст: чтения пусты, записи no-op
	StorageHeadless = "headless"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Session  SessionConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// StorageConfig выбирает backend blob-хранилища
type StorageConfig struct {
	// Backend: memory, redis, postgres или headless
	Backend string `mapstructure:"backend"`
	// Seed: заполнять ли пустую коллекцию викторин примерами при первом запуске
	Seed bool `mapstructure:"seed"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// SessionConfig содержит настройки движка сессий
type SessionConfig struct {
	// TickIntervalMs — период тика отсчёта в миллисекундах (по умолчанию 1000)
	TickIntervalMs int `mapstructure:"tick_interval_ms"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("storage.backend", StorageMemory)
	vip.SetDefault("storage.seed", true)
	vip.SetDefault("session.tick_interval_ms", 1000)

	// 2. Привязываем переменные окружения явно
	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("storage.backend", "STORAGE_BACKEND")
	vip.BindEnv("storage.seed", "STORAGE_SEED")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("session.tick_interval_ms", "SESSION_TICK_INTERVAL_MS")

	// 3. Файл конфигурации опционален: BindEnv покрывает остальное
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим объединённую конфигурацию
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Storage Backend: %s", cfg.Storage.Backend)
		log.Printf("Storage Seed: %t", cfg.Storage.Seed)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Session Tick Interval: %d ms", cfg.Session.TickIntervalMs)
		log.Printf("-----------------------------------------")
	}

	// 6. Проверка обязательных параметров выбранного backend
	switch cfg.Storage.Backend {
	case StorageMemory, StorageHeadless:
		// Внешних зависимостей нет
	case StorageRedis:
		if len(cfg.Redis.Addrs) == 0 && cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis storage backend requires REDIS_ADDR or REDIS_ADDRS")
		}
	case StoragePostgres:
		if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
			return nil, fmt.Errorf("postgres storage backend requires DATABASE_HOST, DATABASE_DBNAME and DATABASE_USER")
		}
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}

	return &cfg, nil
}
