package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"accounts-api/internal/messaging"
	"accounts-api/internal/models"
	"accounts-api/internal/repository"
)

func newAccountService(repo *fakeUserRepo) AccountService {
	return NewAccountService(repo, messaging.NewNoopPublisher(), bcrypt.MinCost, zap.NewNop())
}

func seedUser(t *testing.T, svc AccountService, email, mobile string) *models.User {
	t.Helper()
	u, err := svc.Create(context.Background(), &models.User{
		FirstName:   "Jo",
		LastName:    "Bloggs",
		Email:       email,
		MobilePhone: mobile,
	}, "")
	require.NoError(t, err)
	return u
}

func TestAccountList_RangeValidation(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	cases := []struct {
		name          string
		offset, limit int64
	}{
		{"negative offset", -1, 10},
		{"zero limit", 0, 0},
		{"limit too large", 0, 101},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(ctx, tc.offset, tc.limit)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestAccountList_EmptyStoreIsNotAnError(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	users, err := svc.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAccountList_Pagination(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedUser(t, svc, string(rune('a'+i))+"@x.com", string(rune('1'+i))+"11")
	}

	page, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)

	// Same window again returns the same records in the same order.
	again, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, page, again)

	tail, err := svc.List(ctx, 4, 100)
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestAccountCreate_ThenGetReturnsSameRecord(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	created := seedUser(t, svc, "a@x.com", "111")
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, created.MobilePhone, got.MobilePhone)
	assert.Equal(t, created.FirstName, got.FirstName)
}

func TestAccountCreate_ConflictOnEmailOrMobile(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	seedUser(t, svc, "a@x.com", "111")

	_, err := svc.Create(ctx, &models.User{Email: "a@x.com", MobilePhone: "222"}, "")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Create(ctx, &models.User{Email: "b@x.com", MobilePhone: "111"}, "")
	assert.ErrorIs(t, err, ErrUserExists)
}

type blindPreCheckRepo struct {
	*fakeUserRepo
}

func (r blindPreCheckRepo) FindByEmailOrMobile(context.Context, string, string) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func TestAccountCreate_StoreConflictWinsOverPreCheck(t *testing.T) {
	// A concurrent create that slips past the pre-check must still surface
	// as a conflict from the store's unique index.
	repo := newFakeUserRepo()
	svc := NewAccountService(blindPreCheckRepo{repo}, messaging.NewNoopPublisher(), bcrypt.MinCost, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.User{Email: "a@x.com", MobilePhone: "111"}, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.User{Email: "a@x.com", MobilePhone: "333"}, "")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAccountCreate_HashesPassword(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Create(ctx, &models.User{Email: "a@x.com", MobilePhone: "111"}, "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestAccountUpdate_PartialLeavesOtherFieldsAlone(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	created := seedUser(t, svc, "a@x.com", "111")

	first := "Ada"
	updated, err := svc.Update(ctx, created.ID, models.UserPatch{FirstName: &first})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, created.LastName, updated.LastName)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.MobilePhone, updated.MobilePhone)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestAccountUpdate_NotFound(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	first := "Ada"
	_, err := svc.Update(context.Background(), "00000000-0000-4000-8000-000000000099", models.UserPatch{FirstName: &first})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccountDelete_ThenGetNotFound(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	created := seedUser(t, svc, "a@x.com", "111")
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err := svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrUserNotFound)
}

type lostRaceRepo struct {
	*fakeUserRepo
}

func (r lostRaceRepo) Delete(context.Context, string) (bool, error) {
	return false, nil
}

func TestAccountDelete_LostRaceIsInternal(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(lostRaceRepo{repo}, messaging.NewNoopPublisher(), bcrypt.MinCost, zap.NewNop())
	ctx := context.Background()

	u, err := svc.Create(ctx, &models.User{Email: "a@x.com", MobilePhone: "111"}, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrInternal)
}

func TestAccountLifecycleScenario(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.User{Email: "a@x.com", MobilePhone: "111"}, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.User{Email: "a@x.com", MobilePhone: "999"}, "")
	require.ErrorIs(t, err, ErrUserExists)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
