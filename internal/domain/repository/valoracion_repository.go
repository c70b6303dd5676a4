package repository

import (
	"context"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

// ValoracionRepository define el puerto de persistencia para Valoracion (DIP).
type ValoracionRepository interface {
	ListAll(ctx context.Context) ([]*entity.Valoracion, error)
	GetByID(ctx context.Context, id int64) (*entity.Valoracion, error)
	ListByValorado(ctx context.Context, usuarioID int64) ([]*entity.Valoracion, error)
	Create(ctx context.Context, v *entity.Valoracion) error
	Update(ctx context.Context, v *entity.Valoracion) error
	Delete(ctx context.Context, id int64) error
}
