package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	setKey string
	setTTL time.Duration
	setErr error
	exists int64
	exErr  error
}

func (f *fakeClient) Set(_ context.Context, key string, _ interface{}, ttl time.Duration) *goredis.StatusCmd {
	f.setKey, f.setTTL = key, ttl
	return goredis.NewStatusResult("OK", f.setErr)
}

func (f *fakeClient) Exists(_ context.Context, _ ...string) *goredis.IntCmd {
	return goredis.NewIntResult(f.exists, f.exErr)
}

func TestRevoke_UsaTTLRestante(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := &fakeClient{}
	d := NewTokenDenylist(c)
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(context.Background(), "jti-1", now.Add(30*time.Minute)))
	assert.Equal(t, keyPrefix+"jti-1", c.setKey)
	assert.Equal(t, 30*time.Minute, c.setTTL)
}

func TestRevoke_TokenYaExpirado(t *testing.T) {
	c := &fakeClient{}
	d := NewTokenDenylist(c)

	require.NoError(t, d.Revoke(context.Background(), "jti-1", time.Now().Add(-time.Minute)))
	assert.Empty(t, c.setKey, "no se escribe nada")
}

func TestRevoke_Error(t *testing.T) {
	d := NewTokenDenylist(&fakeClient{setErr: errors.New("conexión rechazada")})
	assert.Error(t, d.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))
}

func TestIsRevoked(t *testing.T) {
	revoked, err := NewTokenDenylist(&fakeClient{exists: 1}).IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = NewTokenDenylist(&fakeClient{}).IsRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = NewTokenDenylist(&fakeClient{exErr: goredis.ErrClosed}).IsRevoked(context.Background(), "jti-3")
	assert.Error(t, err)
}
