package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

func TestNotFound_EsErrNotFound(t *testing.T) {
	for _, err := range []error{
		domain.ErrUserNotFound,
		domain.ErrServicioNotFound,
		domain.ErrTransaccionNotFound,
		domain.ErrValoracionNotFound,
		domain.ErrMensajeNotFound,
	} {
		assert.ErrorIs(t, err, domain.ErrNotFound, err.Error())
		assert.ErrorIs(t, fmt.Errorf("envuelto: %w", err), domain.ErrNotFound)
	}
	assert.Equal(t, "Usuario no encontrado", domain.ErrUserNotFound.Error())
	assert.False(t, errors.Is(domain.ErrHasDependents, domain.ErrNotFound))
}
