package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"accounts-api/internal/messaging"
	"accounts-api/internal/models"
	"accounts-api/internal/repository"
)

const maxListLimit = 100

type accountService struct {
	userRepo  repository.UserRepository
	publisher messaging.EventPublisher
	hashCost  int
	log       *zap.Logger
}

// NewAccountService creates the CRUD orchestration service.
func NewAccountService(userRepo repository.UserRepository, publisher messaging.EventPublisher, hashCost int, log *zap.Logger) AccountService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &accountService{
		userRepo:  userRepo,
		publisher: publisher,
		hashCost:  hashCost,
		log:       log,
	}
}

func (s *accountService) List(ctx context.Context, offset, limit int64) ([]models.User, error) {
	if offset < 0 || limit < 1 || limit > maxListLimit {
		return nil, ErrInvalidRange
	}
	users, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *accountService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Create checks email/mobile uniqueness before inserting. The pre-check is an
// optimization for a friendly error; the store's unique indexes are the
// authoritative guard, so a concurrent create racing past the pre-check still
// surfaces as ErrUserExists.
func (s *accountService) Create(ctx context.Context, u *models.User, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmailOrMobile(ctx, u.Email, u.MobilePhone)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publish(ctx, messaging.EventUserCreated, u)
	return u, nil
}

func (s *accountService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	u, err := s.userRepo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if errors.Is(err, repository.ErrUserExists) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.publish(ctx, messaging.EventUserUpdated, u)
	return u, nil
}

// Delete verifies existence first; a delete that then removes nothing means
// the record vanished between the two calls, reported as ErrInternal rather
// than not-found.
func (s *accountService) Delete(ctx context.Context, id string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return fmt.Errorf("unable to delete user: %w", ErrInternal)
	}

	s.publish(ctx, messaging.EventUserDeleted, u)
	return nil
}

func (s *accountService) publish(ctx context.Context, eventType string, u *models.User) {
	if err := s.publisher.PublishUserEvent(ctx, eventType, u); err != nil {
		s.log.Warn("failed to publish user event",
			zap.String("type", eventType),
			zap.String("user_id", u.ID),
			zap.Error(err),
		)
	}
}
