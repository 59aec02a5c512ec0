package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/pkg/database"
)

// StatusHandler отвечает на проверки живости сервиса и его зависимостей
type StatusHandler struct {
	db          *gorm.DB
	redisClient redis.UniversalClient
}

// NewStatusHandler создает обработчик статуса; redisClient может быть nil
func NewStatusHandler(db *gorm.DB, redisClient redis.UniversalClient) *StatusHandler {
	return &StatusHandler{db: db, redisClient: redisClient}
}

// Status сообщает, что API запущено
// GET /api/status
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "api is running"})
}

// Database проверяет доступность PostgreSQL и, если настроен, Redis
// GET /api/status/database
func (h *StatusHandler) Database(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		log.Printf("[StatusHandler] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "database is unavailable", "error_type": "internal_server_error"})
		return
	}

	resp := gin.H{"status": "database is ok"}
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("[StatusHandler] Redis ping failed: %v", err)
			resp["redis"] = "unavailable"
		} else {
			resp["redis"] = "ok"
		}
	}
	c.JSON(http.StatusOK, resp)
}
