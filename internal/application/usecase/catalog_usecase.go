package usecase

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// CatalogUseCase datos de referencia de solo lectura.
type CatalogUseCase struct {
	repo repository.CatalogRepository
	rel  *Relations
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository, rel *Relations) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, rel: rel}
}

// sortByNombre ordena según la collation española ("Ávila" junto a "Almería", "ñ" tras "n").
// collate.Collator no es seguro para uso concurrente: uno por llamada.
func sortByNombre[T any](items []T, nombre func(T) string) {
	col := collate.New(language.Spanish)
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(nombre(items[i]), nombre(items[j])) < 0
	})
}

func (uc *CatalogUseCase) Provincias(ctx context.Context) ([]dto.ProvinciaResponse, error) {
	list, err := uc.repo.ListProvincias(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProvinciaResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProvinciaResponse(p))
	}
	sortByNombre(out, func(p dto.ProvinciaResponse) string { return p.Nombre })
	return out, nil
}

// Poblaciones todas o las de una provincia, con su provincia anidada.
func (uc *CatalogUseCase) Poblaciones(ctx context.Context, provinciaID *int64) ([]dto.PoblacionResponse, error) {
	list, err := uc.repo.ListPoblaciones(ctx, provinciaID)
	if err != nil {
		return nil, err
	}
	out, err := uc.rel.Poblaciones(ctx, list)
	if err != nil {
		return nil, err
	}
	sortByNombre(out, func(p dto.PoblacionResponse) string { return p.Nombre })
	return out, nil
}

func (uc *CatalogUseCase) Categorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := uc.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoriaResponse(c))
	}
	sortByNombre(out, func(c dto.CategoriaResponse) string { return c.Nombre })
	return out, nil
}

// Roles en orden de id (admin, profesional, usuario).
func (uc *CatalogUseCase) Roles(ctx context.Context) ([]dto.RolResponse, error) {
	list, err := uc.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RolResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRolResponse(r))
	}
	return out, nil
}

// Tables nombres de las tablas del esquema.
func (uc *CatalogUseCase) Tables(ctx context.Context) ([]string, error) {
	names, err := uc.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

