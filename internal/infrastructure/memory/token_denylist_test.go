package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/memory"
)

func TestTokenDenylist_RevocaHastaExpirar(t *testing.T) {
	ctx := context.Background()
	d := memory.NewTokenDenylist()

	require.NoError(t, d.Revoke(ctx, "a", time.Now().Add(time.Hour)))
	ok, err := d.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = d.IsRevoked(ctx, "b")
	assert.False(t, ok)
}

func TestTokenDenylist_PurgaVencidos(t *testing.T) {
	ctx := context.Background()
	d := memory.NewTokenDenylist()

	require.NoError(t, d.Revoke(ctx, "viejo", time.Now().Add(-time.Second)))
	assert.Zero(t, d.Len(), "un token ya expirado no se guarda")

	require.NoError(t, d.Revoke(ctx, "corto", time.Now().Add(20*time.Millisecond)))
	time.Sleep(40 * time.Millisecond)
	ok, _ := d.IsRevoked(ctx, "corto")
	assert.False(t, ok)

	require.NoError(t, d.Revoke(ctx, "nuevo", time.Now().Add(time.Hour)))
	assert.Equal(t, 1, d.Len())
}

func TestTokenDenylist_Concurrente(t *testing.T) {
	ctx := context.Background()
	d := memory.NewTokenDenylist()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = d.Revoke(ctx, string(rune('a'+i%26)), time.Now().Add(time.Minute))
			_, _ = d.IsRevoked(ctx, "a")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 26, d.Len())
}
