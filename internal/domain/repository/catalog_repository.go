package repository

import (
	"context"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

// CatalogRepository tablas de referencia (solo lectura).
type CatalogRepository interface {
	ListProvincias(ctx context.Context) ([]*entity.Provincia, error)
	// ListPoblaciones todas las poblaciones o, si provinciaID no es nil, las de esa provincia.
	ListPoblaciones(ctx context.Context, provinciaID *int64) ([]*entity.Poblacion, error)
	ListCategorias(ctx context.Context) ([]*entity.Categoria, error)
	ListRoles(ctx context.Context) ([]*entity.Rol, error)
	ListTables(ctx context.Context) ([]string, error)

	ProvinciasByIDs(ctx context.Context, ids []int64) ([]*entity.Provincia, error)
	PoblacionesByIDs(ctx context.Context, ids []int64) ([]*entity.Poblacion, error)
	CategoriasByIDs(ctx context.Context, ids []int64) ([]*entity.Categoria, error)
	RolesByIDs(ctx context.Context, ids []int64) ([]*entity.Rol, error)
}
