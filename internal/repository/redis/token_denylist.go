package redis

import (
	"context"
	"errors"
	"time"

	"github.com/penpalhq/penpals-backend/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

type tokenDenylist struct {
	client *goredis.Client
}

// NewTokenDenylist returns a denylist backed by Redis. Entries expire
// together with the tokens they revoke.
func NewTokenDenylist(client *goredis.Client) repository.TokenDenylist {
	return &tokenDenylist{client: client}
}

func denylistKey(jti string) string {
	return "denylist:" + jti
}

func (d *tokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to revoke.
		return nil
	}
	return d.client.Set(ctx, denylistKey(jti), 1, ttl).Err()
}

func (d *tokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.client.Get(ctx, denylistKey(jti)).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
