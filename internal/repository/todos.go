package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"habitflow/internal/database"
	"habitflow/internal/models"
	"habitflow/pkg/logger"
)

const todoColumns = `id, user_id, title, description, status, priority, deadline, recurring_type, recurring_times, created_at, updated_at`

func scanTodo(row interface{ Scan(...interface{}) error }) (models.Todo, error) {
	var t models.Todo
	var recType sql.NullString
	var recTimes sql.NullInt64
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Deadline, &recType, &recTimes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if recType.Valid {
		t.Recurring = &models.Recurring{Type: recType.String, Times: int(recTimes.Int64)}
	}
	return t, nil
}

// ListTodos returns all non-deleted todos of a user, newest first.
func ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	db := database.DB(ctx)
	if db == nil {
		return nil, database.ErrNoDatabase
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 AND is_deleted = FALSE ORDER BY created_at DESC`,
		userID)
	if err != nil {
		logger.Error(ctx, "Repository ListTodos failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var todos []models.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			logger.Error(ctx, "Repository scan todo failed", "error", err)
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// CreateTodo inserts a new todo.
func CreateTodo(ctx context.Context, t *models.Todo) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	var recType, recTimes interface{}
	if t.Recurring != nil {
		recType = t.Recurring.Type
		recTimes = t.Recurring.Times
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO todos (id, user_id, title, description, status, priority, deadline, recurring_type, recurring_times, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.UserID, t.Title, t.Description, t.Status, t.Priority, t.Deadline,
		recType, recTimes, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		logger.Error(ctx, "Repository CreateTodo failed", "error", err)
		return err
	}
	return nil
}

// UpdateTodo applies a partial update; empty/nil command fields keep current values.
func UpdateTodo(ctx context.Context, cmd *models.TodoCommand) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	var status interface{}
	if cmd.Status != nil {
		status = string(*cmd.Status)
	}
	var recType, recTimes interface{}
	if cmd.Recurring != nil {
		recType = cmd.Recurring.Type
		recTimes = cmd.Recurring.Times
	}
	_, err := db.ExecContext(ctx,
		`UPDATE todos SET
			title           = COALESCE(NULLIF($1,''), title),
			description     = COALESCE(NULLIF($2,''), description),
			status          = COALESCE($3, status),
			priority        = COALESCE(NULLIF($4,''), priority),
			deadline        = COALESCE($5, deadline),
			recurring_type  = COALESCE($6, recurring_type),
			recurring_times = COALESCE($7, recurring_times),
			updated_at      = $8
		 WHERE id = $9 AND user_id = $10 AND is_deleted = FALSE`,
		cmd.Title, cmd.Description, status, cmd.Priority, cmd.Deadline,
		recType, recTimes, time.Now(), cmd.ID, cmd.UserID)
	if err != nil {
		logger.Error(ctx, "Repository UpdateTodo failed", "error", err, "id", cmd.ID)
		return err
	}
	return nil
}

// DeleteTodo soft-deletes a todo.
func DeleteTodo(ctx context.Context, id, userID string) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	_, err := db.ExecContext(ctx,
		`UPDATE todos SET is_deleted = TRUE, updated_at = $1 WHERE id = $2 AND user_id = $3`,
		time.Now(), id, userID)
	if err != nil {
		logger.Error(ctx, "Repository DeleteTodo failed", "error", err, "id", id)
		return err
	}
	return nil
}
