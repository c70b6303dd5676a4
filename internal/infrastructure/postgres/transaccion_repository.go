package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

var _ repository.TransaccionRepository = (*TransaccionRepo)(nil)

const transaccionColumns = `id, servicio_id, usuario_solicitante_id, usuario_ofertante_id, horas, estado,
	fecha_confirmacion, created_at`

var transaccionDependents = []dependent{
	{"valoraciones", "transaccion_id"},
}

// TransaccionRepo implementación del puerto TransaccionRepository sobre PostgreSQL.
type TransaccionRepo struct {
	db Querier
}

// NewTransaccionRepository construye el adaptador de persistencia para transacciones.
func NewTransaccionRepository(db Querier) *TransaccionRepo {
	return &TransaccionRepo{db: db}
}

func scanTransaccion(s scanner) (*entity.Transaccion, error) {
	var t entity.Transaccion
	err := s.Scan(
		&t.ID, &t.ServicioID, &t.UsuarioSolicitanteID, &t.UsuarioOfertanteID, &t.Horas, &t.Estado,
		&t.FechaConfirmacion, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransaccionRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Transaccion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Transaccion
	for rows.Next() {
		t, err := scanTransaccion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaccion: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListAll lista todas las transacciones.
func (r *TransaccionRepo) ListAll(ctx context.Context) ([]*entity.Transaccion, error) {
	return r.list(ctx, "list transacciones", `SELECT `+transaccionColumns+` FROM transacciones ORDER BY id`)
}

// ListByIDs transacciones cuyos ids están en ids.
func (r *TransaccionRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Transaccion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list transacciones by ids",
		`SELECT `+transaccionColumns+` FROM transacciones WHERE id = ANY($1)`, ids)
}

// ListByUsuario transacciones donde el usuario participa como solicitante u ofertante.
// Una fila por transacción aunque el usuario ocupe ambos papeles.
func (r *TransaccionRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]*entity.Transaccion, error) {
	return r.list(ctx, "list transacciones by usuario", `
		SELECT `+transaccionColumns+` FROM transacciones
		WHERE usuario_solicitante_id = $1 OR usuario_ofertante_id = $1
		ORDER BY created_at, id`, usuarioID)
}

// GetByID obtiene una transacción por ID.
func (r *TransaccionRepo) GetByID(ctx context.Context, id int64) (*entity.Transaccion, error) {
	t, err := scanTransaccion(r.db.QueryRow(ctx, `SELECT `+transaccionColumns+` FROM transacciones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaccion: %w", err)
	}
	return t, nil
}

// Create persiste una transacción; asigna ID y created_at.
func (r *TransaccionRepo) Create(ctx context.Context, t *entity.Transaccion) error {
	query := `
		INSERT INTO transacciones (servicio_id, usuario_solicitante_id, usuario_ofertante_id, horas, estado,
			fecha_confirmacion)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		t.ServicioID, t.UsuarioSolicitanteID, t.UsuarioOfertanteID, t.Horas, t.Estado, t.FechaConfirmacion,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaccion: %w", err)
	}
	return nil
}

// Update reescribe la transacción (created_at no cambia).
func (r *TransaccionRepo) Update(ctx context.Context, t *entity.Transaccion) error {
	query := `
		UPDATE transacciones SET servicio_id = $2, usuario_solicitante_id = $3, usuario_ofertante_id = $4,
			horas = $5, estado = $6, fecha_confirmacion = $7
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		t.ID, t.ServicioID, t.UsuarioSolicitanteID, t.UsuarioOfertanteID, t.Horas, t.Estado, t.FechaConfirmacion,
	)
	if err != nil {
		return fmt.Errorf("update transaccion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una transacción sin valoraciones.
func (r *TransaccionRepo) Delete(ctx context.Context, id int64) error {
	return deleteRestrict(ctx, r.db, "transacciones", id, transaccionDependents)
}
