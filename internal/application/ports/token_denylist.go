package ports

import (
	"context"
	"time"
)

// TokenDenylist guarda los identificadores (jti) de tokens revocados hasta su expiración.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
