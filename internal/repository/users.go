package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"habitflow/internal/database"
	"habitflow/internal/models"
	"habitflow/pkg/logger"
)

// CreateUser inserts a new user.
func CreateUser(ctx context.Context, u *models.User) error {
	db := database.DB(ctx)
	if db == nil {
		return database.ErrNoDatabase
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		logger.Error(ctx, "Repository CreateUser failed", "error", err)
		return err
	}
	return nil
}

// GetUserByEmail returns the user with the given email.
func GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	db := database.DB(ctx)
	if db == nil {
		return models.User{}, database.ErrNoDatabase
	}
	var u models.User
	err := db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
