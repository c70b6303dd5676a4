package repository

import (
	"context"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

// ServicioRepository define el puerto de persistencia para Servicio (DIP).
type ServicioRepository interface {
	ListAll(ctx context.Context) ([]*entity.Servicio, error)
	GetByID(ctx context.Context, id int64) (*entity.Servicio, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Servicio, error)
	ListByUsuario(ctx context.Context, usuarioID int64) ([]*entity.Servicio, error)
	Create(ctx context.Context, s *entity.Servicio) error
	Update(ctx context.Context, s *entity.Servicio) error
	Delete(ctx context.Context, id int64) error
}
