package security

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker records revoked token IDs until their natural expiry. Tokens
// are otherwise stateless, so this is what makes logout mean something.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisDenylist struct {
	rdb *redis.Client
}

func NewRedisDenylist(rdb *redis.Client) TokenRevoker {
	return &redisDenylist{rdb: rdb}
}

func denylistKey(jti string) string {
	return "token_denylist:" + jti
}

func (d *redisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := d.rdb.Set(ctx, denylistKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redisDenylist.Revoke: %w", err)
	}
	return nil
}

func (d *redisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redisDenylist.IsRevoked: %w", err)
	}
	return n > 0, nil
}
