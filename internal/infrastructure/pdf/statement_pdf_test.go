package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
)

func TestRenderStatement(t *testing.T) {
	st := &ports.Statement{
		Usuario:    "Ana Ruiz",
		Email:      "ana@correo.es",
		HorasSaldo: 7,
		Lineas: []ports.StatementLine{
			{Fecha: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Servicio: "Clases de guitarra", Rol: "ofertante", Horas: 2, Estado: "confirmado"},
			{Fecha: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Servicio: "Paseo de perros", Rol: "solicitante", Horas: 1, Estado: "pendiente"},
		},
		HorasPrestadas: 2,
		GeneradoEn:     time.Now(),
	}

	out, err := NewStatementPDF("").RenderStatement(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestRenderStatement_SinLineas(t *testing.T) {
	out, err := NewStatementPDF("Banco de Tiempo Vallecas").RenderStatement(context.Background(), &ports.Statement{
		Usuario: "Luis Gil", Email: "luis@correo.es", HorasSaldo: 5, GeneradoEn: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "1 hora", formatHoras(1))
	assert.Equal(t, "0 horas", formatHoras(0))
	assert.Equal(t, "12 horas", formatHoras(12))
	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
