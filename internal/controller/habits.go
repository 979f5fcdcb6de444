package controller

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"habitflow/internal/cache"
	"habitflow/internal/habit"
	"habitflow/internal/models"
	"habitflow/internal/queue"
	"habitflow/internal/repository"
	"habitflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var habitsGroup singleflight.Group

func currentUser(c *gin.Context) string {
	v, _ := c.Get("user")
	uid, _ := v.(string)
	return uid
}

// GetHabits returns the user's habits as JSON, cache-first as raw bytes.
func GetHabits(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if b, ok := cache.GetRawHabits(ctx, uid); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}
	v, err, _ := habitsGroup.Do("habits:"+uid, func() (interface{}, error) {
		habits, err := repository.ListHabits(context.Background(), uid)
		if err != nil {
			return nil, err
		}
		return json.Marshal(habits)
	})
	if err != nil {
		if ctx.Err() != nil || isContextErr(err) {
			return
		}
		logger.Error(ctx, "GetHabits repository failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get habits"})
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	cache.SetRawHabitsAsync(uid, b)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type todayHabit struct {
	models.Habit
	EffectiveStreak int `json:"effective_streak"`
}

type todayGroup struct {
	TimeOfDay models.TimeOfDay `json:"time_of_day"`
	Habits    []todayHabit     `json:"habits"`
}

// GetToday returns the habits due today, grouped by time of day with
// effective streaks, plus the count of weekly habits hidden today.
func GetToday(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	habits, err := repository.ListHabits(ctx, uid)
	if err != nil {
		logger.Error(ctx, "GetToday repository failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get habits"})
		return
	}

	now := time.Now()
	due := habit.FilterDueToday(habits, now)
	for _, h := range due {
		if !h.TimeOfDay.Valid() {
			logger.Warn(ctx, "Habit has unknown time_of_day, dropped from today view",
				"habit_id", h.ID, "time_of_day", string(h.TimeOfDay))
		}
	}

	groups := make([]todayGroup, 0)
	for _, g := range habit.GroupByTimeOfDay(due) {
		tg := todayGroup{TimeOfDay: g.TimeOfDay, Habits: make([]todayHabit, 0, len(g.Habits))}
		for _, h := range g.Habits {
			tg.Habits = append(tg.Habits, todayHabit{Habit: h, EffectiveStreak: habit.EffectiveStreak(h, now)})
		}
		groups = append(groups, tg)
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          now.Format("2006-01-02"),
		"groups":        groups,
		"hidden_weekly": habit.CountHiddenWeekly(habits, now),
	})
}

type createHabitRequest struct {
	Title      string   `json:"title" binding:"required"`
	Recurrence string   `json:"recurrence" binding:"required"`
	Weekdays   []string `json:"weekdays"`
	TimeOfDay  string   `json:"time_of_day" binding:"required"`
}

func validateHabitFields(recurrence string, weekdays []string, timeOfDay string) string {
	if recurrence != "" && !models.Recurrence(recurrence).Valid() {
		return "recurrence must be daily, weekly or monthly"
	}
	for _, wd := range weekdays {
		if !models.ValidWeekday(wd) {
			return "weekdays must be lowercase English weekday names"
		}
	}
	if timeOfDay != "" && !models.TimeOfDay(timeOfDay).Valid() {
		return "time_of_day must be Morning, Lunch, Afternoon, Evening or Daily"
	}
	return ""
}

// CreateHabit validates the body, publishes a create command, returns 202.
func CreateHabit(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var body createHabitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if msg := validateHabitFields(body.Recurrence, body.Weekdays, body.TimeOfDay); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	id := uuid.New().String()
	cmd := &models.HabitCommand{
		Action:      "create",
		ID:          id,
		UserID:      uid,
		Title:       body.Title,
		Recurrence:  models.Recurrence(body.Recurrence),
		Weekdays:    body.Weekdays,
		TimeOfDay:   models.TimeOfDay(body.TimeOfDay),
		RequestedAt: time.Now(),
	}
	if err := queue.PublishHabitCommand(ctx, cmd); err != nil {
		logger.Error(ctx, "CreateHabit publish failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request queue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": id, "message": "Habit creation queued"})
}

type updateHabitRequest struct {
	Title      string         `json:"title"`
	Recurrence string         `json:"recurrence"`
	Weekdays   []string       `json:"weekdays"`
	TimeOfDay  string         `json:"time_of_day"`
	Status     *models.Status `json:"status"`
}

// UpdateHabit publishes a partial update command, returns 202.
func UpdateHabit(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing habit id"})
		return
	}
	var body updateHabitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if msg := validateHabitFields(body.Recurrence, body.Weekdays, body.TimeOfDay); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if body.Status != nil && *body.Status != models.StatusTodo && *body.Status != models.StatusDone {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Todo or Done"})
		return
	}
	cmd := &models.HabitCommand{
		Action:      "update",
		ID:          id,
		UserID:      uid,
		Title:       body.Title,
		Recurrence:  models.Recurrence(body.Recurrence),
		Weekdays:    body.Weekdays,
		TimeOfDay:   models.TimeOfDay(body.TimeOfDay),
		Status:      body.Status,
		RequestedAt: time.Now(),
	}
	if err := queue.PublishHabitCommand(ctx, cmd); err != nil {
		logger.Error(ctx, "UpdateHabit publish failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request queue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": id, "message": "Habit update queued"})
}

// DeleteHabit publishes a soft-delete command, returns 202.
func DeleteHabit(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing habit id"})
		return
	}
	cmd := &models.HabitCommand{
		Action:      "delete",
		ID:          id,
		UserID:      uid,
		RequestedAt: time.Now(),
	}
	if err := queue.PublishHabitCommand(ctx, cmd); err != nil {
		logger.Error(ctx, "DeleteHabit publish failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request queue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": id, "message": "Habit deletion queued"})
}

// CompleteHabit publishes a completion command. The worker reads the current
// record and writes streak, status and last_completed_date together; the
// response previews the streak the user will see.
func CompleteHabit(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing habit id"})
		return
	}
	now := time.Now()
	h, err := repository.GetHabit(ctx, id, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
			return
		}
		logger.Error(ctx, "CompleteHabit lookup failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load habit"})
		return
	}
	cmd := &models.HabitCommand{
		Action:      "complete",
		ID:          id,
		UserID:      uid,
		RequestedAt: now,
	}
	if err := queue.PublishHabitCommand(ctx, cmd); err != nil {
		logger.Error(ctx, "CompleteHabit publish failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request queue failed"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"id":      id,
		"message": "Habit completion queued",
		"streak":  habit.RecordCompletion(h, now),
	})
}
