package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

var _ repository.ReferenceLookup = (*ReferenceLookup)(nil)

// Solo estas tablas pueden aparecer en la consulta de existencia; el nombre se concatena en el SQL.
var lookupTables = map[string]bool{
	repository.TablaUsuarios:      true,
	repository.TablaServicios:     true,
	repository.TablaTransacciones: true,
	repository.TablaProvincias:    true,
	repository.TablaCiudades:      true,
	repository.TablaCategorias:    true,
	repository.TablaRoles:         true,
}

// ReferenceLookup comprobaciones de claves foráneas y email único para el validador.
type ReferenceLookup struct {
	db Querier
}

// NewReferenceLookup construye el adaptador.
func NewReferenceLookup(db Querier) *ReferenceLookup {
	return &ReferenceLookup{db: db}
}

// Exists indica si table contiene una fila con ese id.
func (l *ReferenceLookup) Exists(ctx context.Context, table string, id int64) (bool, error) {
	if !lookupTables[table] {
		return false, fmt.Errorf("lookup: tabla no permitida %q", table)
	}
	var ok bool
	if err := l.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("lookup %s: %w", table, err)
	}
	return ok, nil
}

// EmailTaken true si un usuario distinto de exceptID usa el email (sin distinguir mayúsculas).
// exceptID 0 no excluye a nadie.
func (l *ReferenceLookup) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var taken bool
	err := l.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM usuarios WHERE lower(email) = lower($1) AND id <> $2)`, email, exceptID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("lookup email: %w", err)
	}
	return taken, nil
}
