package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"habitflow/internal/database"
	"habitflow/internal/models"
	"habitflow/pkg/logger"
)

const habitColumns = `id, user_id, title, recurrence, weekdays, time_of_day, status, streak, last_completed_date, created_at, updated_at`

func scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Recurrence, pq.Array(&h.Weekdays),
		&h.TimeOfDay, &h.Status, &h.Streak, &h.LastCompletedDate, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// ListHabits returns all non-deleted habits of a user, newest first.
func ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	db := database.DB(ctx)
	if db == nil {
		return nil, database.ErrNoDatabase
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE user_id = $1 AND is_deleted = FALSE ORDER BY created_at DESC`,
		userID)
	if err != nil {
		logger.Error(ctx, "Repository ListHabits failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			logger.Error(ctx, "Repository scan habit failed", "error", err)
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// GetHabit returns one non-deleted habit by ID scoped to its owner.
func GetHabit(ctx context.Context, id, userID string) (models.Habit, error) {
	db := database.DB(ctx)
	if db == nil {
		return models.Habit{}, database.ErrNoDatabase
	}
	row := db.QueryRowContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE`,
		id, userID)
	return scanHabit(row)
}

// CreateHabit inserts a new habit.
func CreateHabit(ctx context.Context, h *models.Habit) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Status == "" {
		h.Status = models.StatusTodo
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO habits (id, user_id, title, recurrence, weekdays, time_of_day, status, streak, last_completed_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		h.ID, h.UserID, h.Title, h.Recurrence, pq.Array(h.Weekdays), h.TimeOfDay,
		h.Status, h.Streak, h.LastCompletedDate, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		logger.Error(ctx, "Repository CreateHabit failed", "error", err)
		return err
	}
	return nil
}

// UpdateHabit applies a partial update; empty/nil command fields keep current values.
func UpdateHabit(ctx context.Context, cmd *models.HabitCommand) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	var weekdays interface{}
	if cmd.Weekdays != nil {
		weekdays = pq.Array(cmd.Weekdays)
	}
	var status interface{}
	if cmd.Status != nil {
		status = string(*cmd.Status)
	}
	_, err := db.ExecContext(ctx,
		`UPDATE habits SET
			title       = COALESCE(NULLIF($1,''), title),
			recurrence  = COALESCE(NULLIF($2,''), recurrence),
			weekdays    = COALESCE($3, weekdays),
			time_of_day = COALESCE(NULLIF($4,''), time_of_day),
			status      = COALESCE($5, status),
			updated_at  = $6
		 WHERE id = $7 AND user_id = $8 AND is_deleted = FALSE`,
		cmd.Title, cmd.Recurrence, weekdays, cmd.TimeOfDay, status, time.Now(), cmd.ID, cmd.UserID)
	if err != nil {
		logger.Error(ctx, "Repository UpdateHabit failed", "error", err, "id", cmd.ID)
		return err
	}
	return nil
}

// CompleteHabit persists a completion: status, streak and last_completed_date
// change together in a single statement so a reader never sees a torn record.
func CompleteHabit(ctx context.Context, id, userID string, streak int, completedAt time.Time) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	_, err := db.ExecContext(ctx,
		`UPDATE habits SET status = $1, streak = $2, last_completed_date = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6 AND is_deleted = FALSE`,
		models.StatusDone, streak, completedAt, time.Now(), id, userID)
	if err != nil {
		logger.Error(ctx, "Repository CompleteHabit failed", "error", err, "id", id)
		return err
	}
	return nil
}

// DeleteHabit soft-deletes a habit; the row is never physically removed.
func DeleteHabit(ctx context.Context, id, userID string) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	_, err := db.ExecContext(ctx,
		`UPDATE habits SET is_deleted = TRUE, updated_at = $1 WHERE id = $2 AND user_id = $3`,
		time.Now(), id, userID)
	if err != nil {
		logger.Error(ctx, "Repository DeleteHabit failed", "error", err, "id", id)
		return err
	}
	return nil
}

// ResetDoneHabits flips every Done habit back to Todo for the new day.
// Returns the number of rows changed.
func ResetDoneHabits(ctx context.Context) (int64, error) {
	db := database.DB(ctx)
	if db == nil {
		return 0, database.ErrNoDatabase
	}
	res, err := db.ExecContext(ctx,
		`UPDATE habits SET status = $1, updated_at = $2 WHERE status = $3 AND is_deleted = FALSE`,
		models.StatusTodo, time.Now(), models.StatusDone)
	if err != nil {
		logger.Error(ctx, "Repository ResetDoneHabits failed", "error", err)
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
