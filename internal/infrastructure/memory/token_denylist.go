// Package memory denylist de tokens en proceso, para despliegues de una sola instancia sin Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
)

var _ ports.TokenDenylist = (*TokenDenylist)(nil)

// TokenDenylist mapa jti → expiración protegido por mutex. Las entradas vencidas se purgan al revocar.
type TokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewTokenDenylist construye una lista vacía.
func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *TokenDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	for id, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, id)
		}
	}
	if expiresAt.After(now) {
		d.revoked[tokenID] = expiresAt
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.revoked[tokenID]
	return ok && exp.After(d.now()), nil
}

// Len número de entradas guardadas (incluidas las vencidas aún no purgadas).
func (d *TokenDenylist) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.revoked)
}
