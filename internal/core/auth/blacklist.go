package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist 已登出的 refresh token（按 jti），过期后自动清掉
type Blacklist struct {
	RDB    *redis.Client
	Prefix string
}

func NewBlacklist(rdb *redis.Client) *Blacklist {
	return &Blacklist{RDB: rdb, Prefix: "token:blacklist:"}
}

func (b *Blacklist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil // 已过期，没必要记
	}
	return b.RDB.Set(ctx, b.Prefix+jti, 1, ttl).Err()
}

func (b *Blacklist) Contains(ctx context.Context, jti string) (bool, error) {
	err := b.RDB.Get(ctx, b.Prefix+jti).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
