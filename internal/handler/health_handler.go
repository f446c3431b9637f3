package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tanisha366/backened/internal/models"
	"github.com/tanisha366/backened/internal/service"
)

type HealthHandler struct {
	messageService *service.MessageService
	timeout        time.Duration
}

func NewHealthHandler(messageService *service.MessageService, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		messageService: messageService,
		timeout:        timeout,
	}
}

// Health reports storage connectivity. It always answers 200.
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	database := "Disconnected"
	if h.messageService.StorageConnected(c.Request.Context(), h.timeout) {
		database = "Connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"database":  database,
		"timestamp": models.FormatTimestamp(time.Now()),
	})
}
