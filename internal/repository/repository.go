package repository

import (
	"context"
	"errors"
	"time"

	"accounts-api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrNoSession    = errors.New("no session for user")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error)
	List(ctx context.Context, offset, limit int64) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionRepository stores the server-side copy of issued refresh tokens,
// keyed by user id. A user has at most one live refresh token; issuing a new
// one replaces the previous, deleting it revokes the session.
type SessionRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID string) (string, error)
	DeleteRefreshToken(ctx context.Context, userID string) error
}
