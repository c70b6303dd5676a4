package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
)

var _ ports.TokenDenylist = (*TokenDenylist)(nil)

const keyPrefix = "bancotiempo:revoked:"

// Client métodos de go-redis que usa la lista de revocación; *goredis.Client lo cumple.
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
}

// TokenDenylist guarda cada jti revocado como clave con TTL igual a la vida restante del token.
type TokenDenylist struct {
	client Client
	now    func() time.Time
}

// NewTokenDenylist construye la lista sobre un cliente Redis.
func NewTokenDenylist(client Client) *TokenDenylist {
	return &TokenDenylist{client: client, now: time.Now}
}

// Revoke marca el token hasta expiresAt. Un token ya expirado no necesita registro.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked indica si el jti está en la lista.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", tokenID, err)
	}
	return n > 0, nil
}
