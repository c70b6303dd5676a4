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

var _ repository.MensajeRepository = (*MensajeRepo)(nil)

const mensajeColumns = `id, emisor_id, receptor_id, servicio_id, mensaje, leido, created_at`

// MensajeRepo implementación del puerto MensajeRepository sobre PostgreSQL.
type MensajeRepo struct {
	db Querier
}

// NewMensajeRepository construye el adaptador de persistencia para mensajes.
func NewMensajeRepository(db Querier) *MensajeRepo {
	return &MensajeRepo{db: db}
}

func scanMensaje(s scanner) (*entity.Mensaje, error) {
	var m entity.Mensaje
	if err := s.Scan(&m.ID, &m.EmisorID, &m.ReceptorID, &m.ServicioID, &m.Texto, &m.Leido, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MensajeRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Mensaje, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Mensaje
	for rows.Next() {
		m, err := scanMensaje(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mensaje: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListAll lista todos los mensajes.
func (r *MensajeRepo) ListAll(ctx context.Context) ([]*entity.Mensaje, error) {
	return r.list(ctx, "list mensajes", `SELECT `+mensajeColumns+` FROM mensajes ORDER BY id`)
}

// ListByUsuario mensajes enviados o recibidos por el usuario, en orden cronológico.
func (r *MensajeRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]*entity.Mensaje, error) {
	return r.list(ctx, "list mensajes by usuario", `
		SELECT `+mensajeColumns+` FROM mensajes
		WHERE emisor_id = $1 OR receptor_id = $1
		ORDER BY created_at, id`, usuarioID)
}

// GetByID obtiene un mensaje por ID.
func (r *MensajeRepo) GetByID(ctx context.Context, id int64) (*entity.Mensaje, error) {
	m, err := scanMensaje(r.db.QueryRow(ctx, `SELECT `+mensajeColumns+` FROM mensajes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mensaje: %w", err)
	}
	return m, nil
}

// Create persiste un mensaje; asigna ID y created_at.
func (r *MensajeRepo) Create(ctx context.Context, m *entity.Mensaje) error {
	query := `
		INSERT INTO mensajes (emisor_id, receptor_id, servicio_id, mensaje, leido)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, m.EmisorID, m.ReceptorID, m.ServicioID, m.Texto, m.Leido).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mensaje: %w", err)
	}
	return nil
}

// Update reescribe el mensaje; created_at es inmutable.
func (r *MensajeRepo) Update(ctx context.Context, m *entity.Mensaje) error {
	query := `
		UPDATE mensajes SET emisor_id = $2, receptor_id = $3, servicio_id = $4, mensaje = $5, leido = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, m.ID, m.EmisorID, m.ReceptorID, m.ServicioID, m.Texto, m.Leido)
	if err != nil {
		return fmt.Errorf("update mensaje: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un mensaje.
func (r *MensajeRepo) Delete(ctx context.Context, id int64) error {
	return deleteRestrict(ctx, r.db, "mensajes", id, nil)
}
