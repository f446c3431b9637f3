package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanisha366/backened/internal/models"
	"github.com/tanisha366/backened/internal/service"
	"github.com/tanisha366/backened/pkg/logger"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// List returns every message, newest first
// GET /api/messages
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messageService.ListMessages(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to fetch messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch messages",
		})
		return
	}

	logger.Log.Info("Fetched messages", zap.Int("count", len(messages)))
	c.JSON(http.StatusOK, messages)
}

// Create stores a new contact message
// POST /api/messages
func (h *MessageHandler) Create(c *gin.Context) {
	var req models.CreateMessageRequest
	if err := decodeStrict(c.Request.Body, &req); err != nil {
		logger.Log.Warn("Message request parsing failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	logger.Log.Debug("Received message request", zap.Any("body", req.Received()))

	msg, err := h.messageService.CreateMessage(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMessage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "All fields are required",
				"received": req.Received(),
			})
			return
		}

		logger.Log.Error("Failed to save message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save message to database",
			"details": err.Error(),
		})
		return
	}

	logger.Log.Info("Message saved", zap.String("message_id", msg.ID))
	c.JSON(http.StatusCreated, msg)
}

// DeleteAll removes every message
// DELETE /api/messages
func (h *MessageHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.messageService.DeleteAllMessages(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to delete messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete messages",
		})
		return
	}

	logger.Log.Info("Deleted messages", zap.Int64("deleted_count", deleted))
	c.JSON(http.StatusOK, gin.H{
		"message":      "All messages deleted successfully",
		"deletedCount": deleted,
	})
}

// decodeStrict decodes exactly one JSON value into out. Unknown fields and
// wrongly typed values are rejected by CreateMessageRequest itself.
// An empty body decodes to a zero request so it fails field validation instead.
func decodeStrict(body io.Reader, out *models.CreateMessageRequest) error {
	if body == nil {
		return nil
	}
	dec := json.NewDecoder(body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
