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
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-api/internal/repository/redis"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
	"github.com/yourusername/quiz-api/pkg/database"
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

	isProduction := gin.Mode() == gin.ReleaseMode

	logLevel := logger.Info
	if isProduction {
		logLevel = logger.Warn
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), logLevel)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis необязателен: без него отключается только ограничение частоты входа
	var redisClient redis.UniversalClient
	redisClient, err = database.NewUniversalRedisClient(ctx, cfg.Redis)
	switch {
	case errors.Is(err, database.ErrRedisDisabled):
		log.Println("Redis не настроен, ограничение частоты входа отключено")
		redisClient = nil
	case err != nil:
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	default:
		defer redisClient.Close()
	}

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	sessionRepo, err := pgRepo.NewSessionRepo(db)
	if err != nil {
		log.Printf("Failed to create session repository: %v", err)
		os.Exit(1)
	}
	subjectRepo := pgRepo.NewSubjectRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	optionRepo := pgRepo.NewQuestionOptionRepo(db)

	// Сервисы
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	authService, err := service.NewAuthService(userRepo, sessionRepo, hasher, cfg.Auth.SessionTTL)
	if err != nil {
		log.Printf("Failed to create auth service: %v", err)
		os.Exit(1)
	}
	userService := service.NewUserService(userRepo, sessionRepo, hasher)
	subjectService := service.NewSubjectService(subjectRepo)
	questionService := service.NewQuestionService(questionRepo, subjectRepo, optionRepo)
	optionService := service.NewOptionService(optionRepo, questionRepo)

	routes := &handler.Routes{
		Auth: handler.NewAuthHandler(authService, handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure || isProduction,
		}),
		Users:          handler.NewUserHandler(userService),
		Subjects:       handler.NewSubjectHandler(subjectService),
		Question:       handler.NewQuestionHandler(questionService),
		Options:        handler.NewOptionHandler(optionService),
		Status:         handler.NewStatusHandler(db, redisClient),
		AuthMiddleware: middleware.NewAuthMiddleware(authService, cfg.Auth.CookieName),
	}
	if redisClient != nil {
		attemptCounter, err := redisRepo.NewAttemptCounter(redisClient)
		if err != nil {
			log.Printf("Failed to create attempt counter: %v", err)
			os.Exit(1)
		}
		rateLimiter := middleware.NewRateLimiter(attemptCounter)
		routes.LoginLimit = rateLimiter.LimitByIP(middleware.LoginRateLimitConfig(cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow))
	}

	// Инициализируем роутер Gin
	router := gin.Default()

	// В production не доверяем прокси-заголовкам (защита от IP spoofing),
	// в development доверяем localhost
	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS; cookie сессии требует AllowCredentials
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if sqlDB, err := database.GetSQLDB(db); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("Server exited properly")
}
