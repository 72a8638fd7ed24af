package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"accounts-api/internal/models"
	"accounts-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository with the same uniqueness
// semantics as the Mongo implementation.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email || e.MobilePhone == u.MobilePhone {
			return repository.ErrUserExists
		}
	}
	r.seq++
	now := time.Now().UTC()
	u.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", r.seq)
	u.CreatedAt = now
	u.UpdatedAt = now
	clone := *u
	r.users = append(r.users, &clone)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == email {
			clone := *e
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmailOrMobile(_ context.Context, email, mobile string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == email || e.MobilePhone == mobile {
			clone := *e
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int64) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for i := offset; i < int64(len(r.users)) && int64(len(out)) < limit; i++ {
		out = append(out, *r.users[i])
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.ID != id {
			continue
		}
		if patch.FirstName != nil {
			e.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			e.LastName = *patch.LastName
		}
		if patch.Email != nil {
			e.Email = *patch.Email
		}
		if patch.MobilePhone != nil {
			e.MobilePhone = *patch.MobilePhone
		}
		if patch.PasswordHash != nil {
			e.PasswordHash = *patch.PasswordHash
		}
		if patch.Verified != nil {
			e.Verified = *patch.Verified
		}
		e.UpdatedAt = time.Now().UTC().Add(time.Millisecond)
		clone := *e
		return &clone, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.users {
		if e.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeSessionRepo keeps refresh tokens in a map.
type fakeSessionRepo struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{tokens: map[string]string{}}
}

func (r *fakeSessionRepo) SaveRefreshToken(_ context.Context, userID, token string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[userID] = token
	return nil
}

func (r *fakeSessionRepo) GetRefreshToken(_ context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[userID]
	if !ok {
		return "", repository.ErrNoSession
	}
	return token, nil
}

func (r *fakeSessionRepo) DeleteRefreshToken(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, userID)
	return nil
}
