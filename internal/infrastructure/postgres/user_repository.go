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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, nombre, apellido, email, password, rol_id, provincia_id, ciudad_id,
	descripcion, horas_saldo, valoracion, ruta_img`

// Filas que impiden borrar un usuario.
var userDependents = []dependent{
	{"servicios", "usuario_id"},
	{"transacciones", "usuario_solicitante_id"},
	{"transacciones", "usuario_ofertante_id"},
	{"valoraciones", "valorador_id"},
	{"valoraciones", "valorado_id"},
	{"mensajes", "emisor_id"},
	{"mensajes", "receptor_id"},
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(s scanner) (*entity.User, error) {
	var u entity.User
	err := s.Scan(
		&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.PasswordHash, &u.RolID, &u.ProvinciaID, &u.CiudadID,
		&u.Descripcion, &u.HorasSaldo, &u.Valoracion, &u.RutaImg,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// ListAll lista todos los usuarios por id.
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx, "list users", `SELECT `+userColumns+` FROM usuarios ORDER BY id`)
}

// ListByIDs usuarios cuyos ids están en ids.
func (r *UserRepo) ListByIDs(ctx context.Context, ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list users by ids", `SELECT `+userColumns+` FROM usuarios WHERE id = ANY($1)`, ids)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE lower(email) = lower($1) LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Create persiste un nuevo usuario y asigna su ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO usuarios (nombre, apellido, email, password, rol_id, provincia_id, ciudad_id,
			descripcion, horas_saldo, valoracion, ruta_img)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		u.Nombre, u.Apellido, u.Email, u.PasswordHash, u.RolID, u.ProvinciaID, u.CiudadID,
		u.Descripcion, u.HorasSaldo, u.Valoracion, u.RutaImg,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update reescribe todos los campos editables del usuario (la contraseña va aparte).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios SET nombre = $2, apellido = $3, email = $4, password = $5, rol_id = $6,
			provincia_id = $7, ciudad_id = $8, descripcion = $9, horas_saldo = $10, valoracion = $11,
			ruta_img = $12
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		u.ID, u.Nombre, u.Apellido, u.Email, u.PasswordHash, u.RolID,
		u.ProvinciaID, u.CiudadID, u.Descripcion, u.HorasSaldo, u.Valoracion, u.RutaImg,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword guarda un nuevo hash de contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE usuarios SET password = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un usuario sin servicios, transacciones, valoraciones ni mensajes asociados.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return deleteRestrict(ctx, r.db, "usuarios", id, userDependents)
}
