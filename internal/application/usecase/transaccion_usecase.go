package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// TransaccionUseCase casos de uso CRUD para transacciones.
type TransaccionUseCase struct {
	repo  repository.TransaccionRepository
	users repository.UserRepository
	rel   *Relations
	val   *validation.Validator
}

// NewTransaccionUseCase construye el caso de uso.
func NewTransaccionUseCase(repo repository.TransaccionRepository, users repository.UserRepository, rel *Relations, val *validation.Validator) *TransaccionUseCase {
	return &TransaccionUseCase{repo: repo, users: users, rel: rel, val: val}
}

func (uc *TransaccionUseCase) List(ctx context.Context) ([]dto.TransaccionResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.rel.Transacciones(ctx, list)
}

// ListByUsuario transacciones en las que el usuario es solicitante u ofertante.
func (uc *TransaccionUseCase) ListByUsuario(ctx context.Context, usuarioID int64) ([]dto.TransaccionResponse, error) {
	if err := ensureUser(ctx, uc.users, usuarioID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return uc.rel.Transacciones(ctx, list)
}

func (uc *TransaccionUseCase) GetByID(ctx context.Context, id int64) (*dto.TransaccionResponse, error) {
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.rel.Transaccion(ctx, t)
}

func (uc *TransaccionUseCase) find(ctx context.Context, id int64) (*entity.Transaccion, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTransaccionNotFound
	}
	return t, nil
}

// Create crea una transacción; estado pendiente si no se indica.
func (uc *TransaccionUseCase) Create(ctx context.Context, in dto.CreateTransaccionRequest) (*dto.TransaccionResponse, error) {
	err := uc.val.Check(ctx, in).
		Exists("servicio_id", repository.TablaServicios, &in.ServicioID).
		Exists("usuario_solicitante_id", repository.TablaUsuarios, &in.UsuarioSolicitanteID).
		Exists("usuario_ofertante_id", repository.TablaUsuarios, &in.UsuarioOfertanteID).
		Err()
	if err != nil {
		return nil, err
	}
	t := &entity.Transaccion{
		ServicioID:           in.ServicioID,
		UsuarioSolicitanteID: in.UsuarioSolicitanteID,
		UsuarioOfertanteID:   in.UsuarioOfertanteID,
		Horas:                in.Horas,
		Estado:               entity.TransaccionPendiente,
	}
	setString(&t.Estado, in.Estado)
	if t.FechaConfirmacion, err = parseFechaConfirmacion(in.FechaConfirmacion); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return uc.rel.Transaccion(ctx, t)
}

// Update aplica solo los campos presentes.
func (uc *TransaccionUseCase) Update(ctx context.Context, id int64, in dto.UpdateTransaccionRequest) (*dto.TransaccionResponse, error) {
	t, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	err = uc.val.Check(ctx, in).
		Exists("servicio_id", repository.TablaServicios, in.ServicioID).
		Exists("usuario_solicitante_id", repository.TablaUsuarios, in.UsuarioSolicitanteID).
		Exists("usuario_ofertante_id", repository.TablaUsuarios, in.UsuarioOfertanteID).
		Err()
	if err != nil {
		return nil, err
	}

	setInt64(&t.ServicioID, in.ServicioID)
	setInt64(&t.UsuarioSolicitanteID, in.UsuarioSolicitanteID)
	setInt64(&t.UsuarioOfertanteID, in.UsuarioOfertanteID)
	setInt(&t.Horas, in.Horas)
	setString(&t.Estado, in.Estado)
	if in.FechaConfirmacion != nil {
		if t.FechaConfirmacion, err = parseFechaConfirmacion(in.FechaConfirmacion); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, t); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTransaccionNotFound
		}
		return nil, err
	}
	return uc.rel.Transaccion(ctx, t)
}

// Delete elimina una transacción sin valoraciones.
func (uc *TransaccionUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrTransaccionNotFound
	}
	return err
}

// parseFechaConfirmacion nil si no viene; error de campo si no es una fecha.
func parseFechaConfirmacion(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	f, err := validation.ParseFecha(*s)
	if err != nil {
		return nil, validation.Field("fecha_confirmacion", "El campo fecha_confirmacion no corresponde con una fecha válida.")
	}
	return &f, nil
}
