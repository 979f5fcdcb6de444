package controller

import (
	"net/http"
	"sync"

	"habitflow/internal/chat"
	"habitflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	chatClient *chat.Client
	chatOnce   sync.Once
)

type chatRequest struct {
	Message string         `json:"message" binding:"required"`
	History []chat.Message `json:"history"`
}

// Chat forwards a productivity question to the upstream chat API.
func Chat(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var body chatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	for _, m := range body.History {
		if m.Role != "user" && m.Role != "assistant" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "history roles must be user or assistant"})
			return
		}
	}
	chatOnce.Do(func() { chatClient = chat.NewClient() })
	reply, err := chatClient.Ask(ctx, body.Message, body.History)
	if err != nil {
		if err == chat.ErrNotConfigured {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat API not configured"})
			return
		}
		logger.Error(ctx, "Chat upstream failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to get response from AI service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}
