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

var _ repository.ValoracionRepository = (*ValoracionRepo)(nil)

const valoracionColumns = `id, transaccion_id, valorador_id, valorado_id, puntuacion, comentario, created_at`

// ValoracionRepo implementación del puerto ValoracionRepository sobre PostgreSQL.
type ValoracionRepo struct {
	db Querier
}

// NewValoracionRepository construye el adaptador de persistencia para valoraciones.
func NewValoracionRepository(db Querier) *ValoracionRepo {
	return &ValoracionRepo{db: db}
}

func scanValoracion(s scanner) (*entity.Valoracion, error) {
	var v entity.Valoracion
	if err := s.Scan(&v.ID, &v.TransaccionID, &v.ValoradorID, &v.ValoradoID, &v.Puntuacion, &v.Comentario, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ValoracionRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Valoracion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Valoracion
	for rows.Next() {
		v, err := scanValoracion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan valoracion: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ListAll lista todas las valoraciones.
func (r *ValoracionRepo) ListAll(ctx context.Context) ([]*entity.Valoracion, error) {
	return r.list(ctx, "list valoraciones", `SELECT `+valoracionColumns+` FROM valoraciones ORDER BY id`)
}

// ListByValorado valoraciones recibidas por un usuario.
func (r *ValoracionRepo) ListByValorado(ctx context.Context, usuarioID int64) ([]*entity.Valoracion, error) {
	return r.list(ctx, "list valoraciones by valorado",
		`SELECT `+valoracionColumns+` FROM valoraciones WHERE valorado_id = $1 ORDER BY id`, usuarioID)
}

// GetByID obtiene una valoración por ID.
func (r *ValoracionRepo) GetByID(ctx context.Context, id int64) (*entity.Valoracion, error) {
	v, err := scanValoracion(r.db.QueryRow(ctx, `SELECT `+valoracionColumns+` FROM valoraciones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get valoracion: %w", err)
	}
	return v, nil
}

// Create persiste una valoración; asigna ID y created_at.
func (r *ValoracionRepo) Create(ctx context.Context, v *entity.Valoracion) error {
	query := `
		INSERT INTO valoraciones (transaccion_id, valorador_id, valorado_id, puntuacion, comentario)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, v.TransaccionID, v.ValoradorID, v.ValoradoID, v.Puntuacion, v.Comentario).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert valoracion: %w", err)
	}
	return nil
}

// Update reescribe la valoración.
func (r *ValoracionRepo) Update(ctx context.Context, v *entity.Valoracion) error {
	query := `
		UPDATE valoraciones SET transaccion_id = $2, valorador_id = $3, valorado_id = $4, puntuacion = $5,
			comentario = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, v.ID, v.TransaccionID, v.ValoradorID, v.ValoradoID, v.Puntuacion, v.Comentario)
	if err != nil {
		return fmt.Errorf("update valoracion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una valoración (nada depende de ella).
func (r *ValoracionRepo) Delete(ctx context.Context, id int64) error {
	return deleteRestrict(ctx, r.db, "valoraciones", id, nil)
}
