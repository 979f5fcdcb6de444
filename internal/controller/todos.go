package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"habitflow/internal/cache"
	"habitflow/internal/models"
	"habitflow/internal/queue"
	"habitflow/internal/repository"
	"habitflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var todosGroup singleflight.Group

// GetTodos returns the user's todos as JSON, cache-first as raw bytes.
func GetTodos(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if b, ok := cache.GetRawTodos(ctx, uid); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}
	v, err, _ := todosGroup.Do("todos:"+uid, func() (interface{}, error) {
		todos, err := repository.ListTodos(context.Background(), uid)
		if err != nil {
			return nil, err
		}
		return json.Marshal(todos)
	})
	if err != nil {
		if ctx.Err() != nil || isContextErr(err) {
			return
		}
		logger.Error(ctx, "GetTodos repository failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get todos"})
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	cache.SetRawTodosAsync(uid, b)
}

type createTodoRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Deadline    *time.Time        `json:"deadline"`
	Priority    string            `json:"priority"`
	Recurring   *models.Recurring `json:"recurring"`
}

// CreateTodo validates the body, publishes a create command, returns 202.
func CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var body createTodoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if body.Priority != "" && !models.Priority(body.Priority).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be Low, Medium or High"})
		return
	}
	id := uuid.New().String()
	cmd := &models.TodoCommand{
		Action:      "create",
		ID:          id,
		UserID:      uid,
		Title:       body.Title,
		Description: body.Description,
		Deadline:    body.Deadline,
		Priority:    models.Priority(body.Priority),
		Recurring:   body.Recurring,
		RequestedAt: time.Now(),
	}
	if err := queue.PublishTodoCommand(ctx, cmd); err != nil {
		logger.Error(ctx, "CreateTodo publish failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request queue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": id, "message": "Todo creation queued"})
}

type updateTodoRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Deadline    *time.Time        `json:"deadline"`
	Status      *models.Status    `json:"status"`
	Priority    string            `json:"priority"`
	Recurring   *models.Recurring `json:"recurring"`
}

// UpdateTodo publishes a partial update command, returns 202.
func UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing todo id"})
		return
	}
	var body updateTodoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if body.Priority != "" && !models.Priority(body.Priority).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be Low, Medium or High"})
		return
	}
	if body.Status != nil && *body.Status != models.StatusTodo && *body.Status != models.StatusDone {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Todo or Done"})
		return
	}
	cmd := &models.TodoCommand{
		Action:      "update",
		ID:          id,
		UserID:      uid,
		Title:       body.Title,
		Description: body.Description,
		Deadline:    body.Deadline,
		Status:      body.Status,
		Priority:    models.Priority(body.Priority),
		Recurring:   body.Recurring,
		RequestedAt: time.Now(),
	}
	if err := queue.PublishTodoCommand(ctx, cmd); err != nil {
		logger.Error(ctx, "UpdateTodo publish failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request queue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": id, "message": "Todo update queued"})
}

// DeleteTodo publishes a soft-delete command, returns 202.
func DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing todo id"})
		return
	}
	cmd := &models.TodoCommand{
		Action:      "delete",
		ID:          id,
		UserID:      uid,
		RequestedAt: time.Now(),
	}
	if err := queue.PublishTodoCommand(ctx, cmd); err != nil {
		logger.Error(ctx, "DeleteTodo publish failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request queue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": id, "message": "Todo deletion queued"})
}
