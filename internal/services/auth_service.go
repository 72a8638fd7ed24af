package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"accounts-api/internal/models"
	"accounts-api/internal/repository"
	"accounts-api/internal/token"
)

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      *token.Manager
	log         *zap.Logger
}

// NewAuthService creates the login/refresh/logout orchestration service.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokens *token.Manager, log *zap.Logger) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		log:         log,
	}
}

// Login authenticates by email and password. A user created without a
// password cannot log in. Lookup misses and password mismatches are
// indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*models.AuthTokens, error) {
	user, err := s.userRepo.FindByEmail(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user during login: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID, true)
}

// Refresh rotates the refresh token: the presented token must match the
// server-side copy, which is replaced in the same call. The new access token
// is not fresh.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// The subject must still exist; a deleted account's session is dead even
	// while its Redis entry has TTL left.
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = s.sessionRepo.DeleteRefreshToken(ctx, userID)
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to resolve refresh subject: %w", err)
	}

	stored, err := s.sessionRepo.GetRefreshToken(ctx, userID)
	if errors.Is(err, repository.ErrNoSession) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}
	if stored != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.sessionRepo.DeleteRefreshToken(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to invalidate refresh token: %w", err)
	}

	return s.issueTokens(ctx, userID, false)
}

// Logout revokes the stored refresh token. Idempotent: logging out twice is
// not an error. Outstanding access tokens simply expire.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.sessionRepo.DeleteRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me resolves the authenticated subject to its live profile.
func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, userID string, fresh bool) (*models.AuthTokens, error) {
	access, _, err := s.tokens.GenerateAccessToken(userID, fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, _, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.sessionRepo.SaveRefreshToken(ctx, userID, refresh, s.tokens.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
