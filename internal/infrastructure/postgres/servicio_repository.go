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

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

const servicioColumns = `id, usuario_id, categoria_id, tipo, titulo, descripcion, provincia_id, ciudad_id,
	horas_estimadas, estado, ruta_img`

var servicioDependents = []dependent{
	{"transacciones", "servicio_id"},
	{"mensajes", "servicio_id"},
}

// ServicioRepo implementación del puerto ServicioRepository sobre PostgreSQL.
type ServicioRepo struct {
	db Querier
}

// NewServicioRepository construye el adaptador de persistencia para servicios.
func NewServicioRepository(db Querier) *ServicioRepo {
	return &ServicioRepo{db: db}
}

func scanServicio(s scanner) (*entity.Servicio, error) {
	var sv entity.Servicio
	err := s.Scan(
		&sv.ID, &sv.UsuarioID, &sv.CategoriaID, &sv.Tipo, &sv.Titulo, &sv.Descripcion,
		&sv.ProvinciaID, &sv.CiudadID, &sv.HorasEstimadas, &sv.Estado, &sv.RutaImg,
	)
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

func (r *ServicioRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Servicio, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Servicio
	for rows.Next() {
		sv, err := scanServicio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan servicio: %w", err)
		}
		list = append(list, sv)
	}
	return list, rows.Err()
}

// ListAll lista todos los servicios.
func (r *ServicioRepo) ListAll(ctx context.Context) ([]*entity.Servicio, error) {
	return r.list(ctx, "list servicios", `SELECT `+servicioColumns+` FROM servicios ORDER BY id`)
}

// ListByIDs servicios cuyos ids están en ids.
func (r *ServicioRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Servicio, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list servicios by ids", `SELECT `+servicioColumns+` FROM servicios WHERE id = ANY($1)`, ids)
}

// ListByUsuario servicios publicados por un usuario.
func (r *ServicioRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]*entity.Servicio, error) {
	return r.list(ctx, "list servicios by usuario",
		`SELECT `+servicioColumns+` FROM servicios WHERE usuario_id = $1 ORDER BY id`, usuarioID)
}

// GetByID obtiene un servicio por ID.
func (r *ServicioRepo) GetByID(ctx context.Context, id int64) (*entity.Servicio, error) {
	sv, err := scanServicio(r.db.QueryRow(ctx, `SELECT `+servicioColumns+` FROM servicios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get servicio: %w", err)
	}
	return sv, nil
}

// Create persiste un servicio y asigna su ID.
func (r *ServicioRepo) Create(ctx context.Context, s *entity.Servicio) error {
	query := `
		INSERT INTO servicios (usuario_id, categoria_id, tipo, titulo, descripcion, provincia_id, ciudad_id,
			horas_estimadas, estado, ruta_img)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		s.UsuarioID, s.CategoriaID, s.Tipo, s.Titulo, s.Descripcion, s.ProvinciaID, s.CiudadID,
		s.HorasEstimadas, s.Estado, s.RutaImg,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert servicio: %w", err)
	}
	return nil
}

// Update reescribe el servicio.
func (r *ServicioRepo) Update(ctx context.Context, s *entity.Servicio) error {
	query := `
		UPDATE servicios SET usuario_id = $2, categoria_id = $3, tipo = $4, titulo = $5, descripcion = $6,
			provincia_id = $7, ciudad_id = $8, horas_estimadas = $9, estado = $10, ruta_img = $11
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		s.ID, s.UsuarioID, s.CategoriaID, s.Tipo, s.Titulo, s.Descripcion,
		s.ProvinciaID, s.CiudadID, s.HorasEstimadas, s.Estado, s.RutaImg,
	)
	if err != nil {
		return fmt.Errorf("update servicio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un servicio sin transacciones ni mensajes asociados.
func (r *ServicioRepo) Delete(ctx context.Context, id int64) error {
	return deleteRestrict(ctx, r.db, "servicios", id, servicioDependents)
}
