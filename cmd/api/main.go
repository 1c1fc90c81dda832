package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizzy-api/internal/config"
	"github.com/yourusername/quizzy-api/internal/domain/repository"
	"github.com/yourusername/quizzy-api/internal/handler"
	"github.com/yourusername/quizzy-api/internal/middleware"
	"github.com/yourusername/quizzy-api/internal/repository/headless"
	"github.com/yourusername/quizzy-api/internal/repository/kvstore"
	"github.com/yourusername/quizzy-api/internal/repository/memory"
	pgRepo "github.com/yourusername/quizzy-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizzy-api/internal/repository/redis"
	"github.com/yourusername/quizzy-api/internal/service"
	"github.com/yourusername/quizzy-api/internal/service/session"
	"github.com/yourusername/quizzy-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем backend blob-хранилища
	backend, err := newBlobBackend(cfg)
	if err != nil {
		log.Printf("Failed to initialize storage backend: %v", err)
		os.Exit(1)
	}

	store := kvstore.NewStore(backend)

	// Заполняем пустой каталог примерами при первом запуске
	if cfg.Storage.Seed {
		if err := store.InitializeSampleData(); err != nil {
			log.Printf("Failed to seed sample quizzes: %v", err)
			os.Exit(1)
		}
	}

	// Создаем контекст с отменой для корректного завершения работы горутин.
	// Его отмена гасит таймеры всех активных сессий.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем сервисы
	quizService := service.NewQuizService(store)
	resultService := service.NewResultService(store)

	sessionConfig := session.DefaultConfig()
	if cfg.Session.TickIntervalMs > 0 {
		sessionConfig.TickInterval = time.Duration(cfg.Session.TickIntervalMs) * time.Millisecond
	}
	sessionManager := session.NewManager(ctx, &session.Dependencies{
		Store:  store,
		Config: sessionConfig,
	})

	// Инициализируем обработчики
	quizHandler := handler.NewQuizHandler(quizService, resultService)
	sessionHandler := handler.NewSessionHandler(sessionManager, resultService)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		api.GET("/categories", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"categories": service.Categories})
		})

		// Викторины
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/featured", quizHandler.GetFeaturedQuizzes)
			quizzes.GET("/my", quizHandler.GetMyQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)

			// Группа маршрутов, требующих quizID
			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractStringParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.GET("/intro", quizHandler.GetQuizIntro)
				quizWithID.PUT("", quizHandler.UpdateQuiz)
				quizWithID.DELETE("", quizHandler.DeleteQuiz)
				quizWithID.POST("/duplicate", quizHandler.DuplicateQuiz)
				quizWithID.GET("/attempts", quizHandler.GetQuizAttempts)
				quizWithID.GET("/attempts/export", quizHandler.ExportQuizAttempts)

				quizWithID.POST("/sessions", sessionHandler.StartSession)
			}
		}

		// Сессии прохождения
		sessions := api.Group("/sessions/:sessionId")
		sessions.Use(middleware.ExtractStringParam("sessionId", "sessionID"))
		{
			sessions.GET("", sessionHandler.GetState)
			sessions.POST("/answer", sessionHandler.SelectAnswer)
			sessions.POST("/submit", sessionHandler.SubmitAnswer)
			sessions.POST("/next", sessionHandler.NextQuestion)
			sessions.POST("/previous", sessionHandler.PreviousQuestion)
			sessions.GET("/results", sessionHandler.GetResults)
			sessions.DELETE("", sessionHandler.AbandonSession)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s (storage: %s)", cfg.Server.Port, cfg.Storage.Backend)

	// После получения сигнала SIGINT или SIGTERM вызываем cancel() для завершения горутин
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Отправляем сигнал завершения для всех горутин
	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}

// newBlobBackend создает backend blob-хранилища по конфигурации
func newBlobBackend(cfg *config.Config) (repository.BlobBackend, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		log.Println("Хранилище: in-memory (состояние не переживает перезапуск)")
		return memory.NewBackend(), nil

	case config.StorageHeadless:
		log.Println("Хранилище: headless (чтения пусты, записи игнорируются)")
		return headless.NewBackend(), nil

	case config.StorageRedis:
		client, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Println("Successfully connected to Redis")
		return redisRepo.NewBackend(client)

	case config.StoragePostgres:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			return nil, err
		}
		log.Println("Successfully connected to PostgreSQL")
		return pgRepo.NewBackend(db)

	default:
		return nil, errors.New("unsupported storage backend: " + cfg.Storage.Backend)
	}
}
