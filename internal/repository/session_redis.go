package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenPrefix = "refresh_token:"

type redisSessionRepo struct {
	rdb *redis.Client
}

// NewRedisSessionRepo stores refresh tokens in Redis under
// refresh_token:<userID>, expiring with the refresh TTL.
func NewRedisSessionRepo(rdb *redis.Client) SessionRepository {
	return &redisSessionRepo{rdb: rdb}
}

func (r *redisSessionRepo) SaveRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	return r.rdb.Set(ctx, refreshTokenPrefix+userID, token, ttl).Err()
}

func (r *redisSessionRepo) GetRefreshToken(ctx context.Context, userID string) (string, error) {
	token, err := r.rdb.Get(ctx, refreshTokenPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return token, err
}

func (r *redisSessionRepo) DeleteRefreshToken(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, refreshTokenPrefix+userID).Err()
}
