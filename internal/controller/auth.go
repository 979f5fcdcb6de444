package controller

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"habitflow/internal/config"
	"habitflow/internal/models"
	"habitflow/internal/repository"
	"habitflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

func issueToken(userID string) (string, error) {
	secret := config.Get().JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates a user account and returns a JWT.
func Register(c *gin.Context) {
	ctx := c.Request.Context()
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	u := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(body.Email)),
		Name:         strings.TrimSpace(body.Name),
		PasswordHash: string(hash),
	}
	if err := repository.CreateUser(ctx, u); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		logger.Error(ctx, "Register create user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	token, err := issueToken(u.ID)
	if err != nil {
		logger.Error(ctx, "Register token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a JWT.
func Login(c *gin.Context) {
	ctx := c.Request.Context()
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	u, err := repository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(body.Email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error(ctx, "Login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	token, err := issueToken(u.ID)
	if err != nil {
		logger.Error(ctx, "Login token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// isUniqueViolation reports a Postgres unique constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
