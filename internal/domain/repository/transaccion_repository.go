package repository

import (
	"context"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

// TransaccionRepository define el puerto de persistencia para Transaccion (DIP).
type TransaccionRepository interface {
	ListAll(ctx context.Context) ([]*entity.Transaccion, error)
	GetByID(ctx context.Context, id int64) (*entity.Transaccion, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Transaccion, error)
	// ListByUsuario transacciones donde el usuario es solicitante u ofertante (sin duplicados).
	ListByUsuario(ctx context.Context, usuarioID int64) ([]*entity.Transaccion, error)
	Create(ctx context.Context, t *entity.Transaccion) error
	Update(ctx context.Context, t *entity.Transaccion) error
	Delete(ctx context.Context, id int64) error
}
