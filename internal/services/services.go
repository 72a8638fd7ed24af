package services

import (
	"context"
	"errors"

	"accounts-api/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidRange        = errors.New("offset must be >= 0 and limit between 1 and 100")
	ErrInvalidCredentials  = errors.New("failed to authenticate user")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrInternal            = errors.New("internal server error")
)

// AccountService defines the user CRUD operations.
type AccountService interface {
	List(ctx context.Context, offset, limit int64) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, u *models.User, password string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// AuthService defines the password/JWT authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthTokens, error)
	Logout(ctx context.Context, userID string) error
	Me(ctx context.Context, userID string) (*models.User, error)
}
