package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo tablas de referencia: provincias, ciudades, categorías y roles.
type CatalogRepo struct {
	db Querier
}

// NewCatalogRepository construye el adaptador de lectura de catálogos.
func NewCatalogRepository(db Querier) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// collect ejecuta query y escanea cada fila con scan.
func collect[T any](ctx context.Context, db Querier, op, query string, scan func(scanner) (*T, error), args ...any) ([]*T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanProvincia(s scanner) (*entity.Provincia, error) {
	var p entity.Provincia
	if err := s.Scan(&p.ID, &p.Nombre); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPoblacion(s scanner) (*entity.Poblacion, error) {
	var p entity.Poblacion
	if err := s.Scan(&p.ID, &p.Nombre, &p.ProvinciaID); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanCategoria(s scanner) (*entity.Categoria, error) {
	var c entity.Categoria
	if err := s.Scan(&c.ID, &c.Nombre, &c.Descripcion); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanRol(s scanner) (*entity.Rol, error) {
	var r entity.Rol
	if err := s.Scan(&r.ID, &r.Nombre); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *CatalogRepo) ListProvincias(ctx context.Context) ([]*entity.Provincia, error) {
	return collect(ctx, r.db, "list provincias", `SELECT id, nombre FROM provincias ORDER BY id`, scanProvincia)
}

func (r *CatalogRepo) ListPoblaciones(ctx context.Context, provinciaID *int64) ([]*entity.Poblacion, error) {
	if provinciaID != nil {
		return collect(ctx, r.db, "list poblaciones",
			`SELECT id, nombre, provincia_id FROM ciudades WHERE provincia_id = $1 ORDER BY id`, scanPoblacion, *provinciaID)
	}
	return collect(ctx, r.db, "list poblaciones", `SELECT id, nombre, provincia_id FROM ciudades ORDER BY id`, scanPoblacion)
}

func (r *CatalogRepo) ListCategorias(ctx context.Context) ([]*entity.Categoria, error) {
	return collect(ctx, r.db, "list categorias", `SELECT id, nombre, descripcion FROM categorias ORDER BY id`, scanCategoria)
}

func (r *CatalogRepo) ListRoles(ctx context.Context) ([]*entity.Rol, error) {
	return collect(ctx, r.db, "list roles", `SELECT id, nombre FROM roles ORDER BY id`, scanRol)
}

// ListTables nombres de las tablas base del esquema actual (incluye la de migraciones).
func (r *CatalogRepo) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *CatalogRepo) ProvinciasByIDs(ctx context.Context, ids []int64) ([]*entity.Provincia, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return collect(ctx, r.db, "provincias by ids", `SELECT id, nombre FROM provincias WHERE id = ANY($1)`, scanProvincia, ids)
}

func (r *CatalogRepo) PoblacionesByIDs(ctx context.Context, ids []int64) ([]*entity.Poblacion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return collect(ctx, r.db, "poblaciones by ids",
		`SELECT id, nombre, provincia_id FROM ciudades WHERE id = ANY($1)`, scanPoblacion, ids)
}

func (r *CatalogRepo) CategoriasByIDs(ctx context.Context, ids []int64) ([]*entity.Categoria, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return collect(ctx, r.db, "categorias by ids",
		`SELECT id, nombre, descripcion FROM categorias WHERE id = ANY($1)`, scanCategoria, ids)
}

func (r *CatalogRepo) RolesByIDs(ctx context.Context, ids []int64) ([]*entity.Rol, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return collect(ctx, r.db, "roles by ids", `SELECT id, nombre FROM roles WHERE id = ANY($1)`, scanRol, ids)
}
