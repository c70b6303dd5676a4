package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

type fakeRenderer struct{ got *ports.Statement }

func (r *fakeRenderer) RenderStatement(_ context.Context, st *ports.Statement) ([]byte, error) {
	r.got = st
	return []byte("%PDF-fake"), nil
}

func TestStatement_Totales(t *testing.T) {
	f := newFixture()
	ana := f.seedUser("Ana", "ana@correo.es")
	luis := f.seedUser("Luis", "luis@correo.es")
	s := f.seedServicio(luis.ID, "Guitarra")
	f.seedTransaccion(s.ID, ana.ID, luis.ID, 2, entity.TransaccionConfirmada)
	f.seedTransaccion(s.ID, luis.ID, ana.ID, 3, entity.TransaccionConfirmada)
	f.seedTransaccion(s.ID, ana.ID, luis.ID, 4, entity.TransaccionPendiente)

	r := &fakeRenderer{}
	uc := usecase.NewStatementUseCase(f.store.Users(), f.store.Transacciones(), f.store.Servicios(), r)

	out, err := uc.Render(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)

	st := r.got
	require.NotNil(t, st)
	assert.Equal(t, "Ana Prueba", st.Usuario)
	assert.Len(t, st.Lineas, 3)
	assert.Equal(t, 2, st.HorasRecibidas)
	assert.Equal(t, 3, st.HorasPrestadas)
	assert.Equal(t, "Guitarra", st.Lineas[0].Servicio)
	assert.Equal(t, usecase.RolSolicitante, st.Lineas[0].Rol)
	assert.Equal(t, usecase.RolOfertante, st.Lineas[1].Rol)
}

func TestStatement_UsuarioInexistente(t *testing.T) {
	f := newFixture()
	uc := usecase.NewStatementUseCase(f.store.Users(), f.store.Transacciones(), f.store.Servicios(), &fakeRenderer{})
	_, err := uc.Render(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
