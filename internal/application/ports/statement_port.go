package ports

import (
	"context"
	"time"
)

// StatementLine una transacción en el extracto de horas de un usuario.
type StatementLine struct {
	Fecha    time.Time
	Servicio string
	Rol      string // "solicitante" u "ofertante"
	Horas    int
	Estado   string
}

// Statement extracto de horas de un usuario.
type Statement struct {
	Usuario        string
	Email          string
	HorasSaldo     int
	Lineas         []StatementLine
	HorasRecibidas int // confirmadas como solicitante
	HorasPrestadas int // confirmadas como ofertante
	GeneradoEn     time.Time
}

// StatementRenderer genera el documento (PDF) del extracto.
type StatementRenderer interface {
	RenderStatement(ctx context.Context, st *Statement) ([]byte, error)
}
