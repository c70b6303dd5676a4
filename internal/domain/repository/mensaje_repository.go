package repository

import (
	"context"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

// MensajeRepository define el puerto de persistencia para Mensaje (DIP).
type MensajeRepository interface {
	ListAll(ctx context.Context) ([]*entity.Mensaje, error)
	GetByID(ctx context.Context, id int64) (*entity.Mensaje, error)
	// ListByUsuario mensajes enviados o recibidos por el usuario.
	ListByUsuario(ctx context.Context, usuarioID int64) ([]*entity.Mensaje, error)
	Create(ctx context.Context, m *entity.Mensaje) error
	Update(ctx context.Context, m *entity.Mensaje) error
	Delete(ctx context.Context, id int64) error
}
