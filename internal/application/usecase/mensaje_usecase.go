package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// MensajeUseCase casos de uso CRUD para mensajes.
type MensajeUseCase struct {
	repo  repository.MensajeRepository
	users repository.UserRepository
	rel   *Relations
	val   *validation.Validator
}

// NewMensajeUseCase construye el caso de uso.
func NewMensajeUseCase(repo repository.MensajeRepository, users repository.UserRepository, rel *Relations, val *validation.Validator) *MensajeUseCase {
	return &MensajeUseCase{repo: repo, users: users, rel: rel, val: val}
}

func (uc *MensajeUseCase) List(ctx context.Context) ([]dto.MensajeResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.rel.Mensajes(ctx, list)
}

// ListByUsuario mensajes enviados o recibidos por el usuario.
func (uc *MensajeUseCase) ListByUsuario(ctx context.Context, usuarioID int64) ([]dto.MensajeResponse, error) {
	if err := ensureUser(ctx, uc.users, usuarioID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return uc.rel.Mensajes(ctx, list)
}

func (uc *MensajeUseCase) GetByID(ctx context.Context, id int64) (*dto.MensajeResponse, error) {
	m, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.rel.Mensaje(ctx, m)
}

func (uc *MensajeUseCase) find(ctx context.Context, id int64) (*entity.Mensaje, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMensajeNotFound
	}
	return m, nil
}

// Create envía un mensaje; leido false si no se indica.
func (uc *MensajeUseCase) Create(ctx context.Context, in dto.CreateMensajeRequest) (*dto.MensajeResponse, error) {
	err := uc.val.Check(ctx, in).
		Exists("emisor_id", repository.TablaUsuarios, &in.EmisorID).
		Exists("receptor_id", repository.TablaUsuarios, &in.ReceptorID).
		Exists("servicio_id", repository.TablaServicios, &in.ServicioID).
		Err()
	if err != nil {
		return nil, err
	}
	m := &entity.Mensaje{
		EmisorID:   in.EmisorID,
		ReceptorID: in.ReceptorID,
		ServicioID: in.ServicioID,
		Texto:      in.Mensaje,
	}
	if in.Leido != nil {
		m.Leido = *in.Leido
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return uc.rel.Mensaje(ctx, m)
}

// Update aplica solo los campos presentes (p. ej. marcar como leído).
func (uc *MensajeUseCase) Update(ctx context.Context, id int64, in dto.UpdateMensajeRequest) (*dto.MensajeResponse, error) {
	m, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	err = uc.val.Check(ctx, in).
		Exists("emisor_id", repository.TablaUsuarios, in.EmisorID).
		Exists("receptor_id", repository.TablaUsuarios, in.ReceptorID).
		Exists("servicio_id", repository.TablaServicios, in.ServicioID).
		Err()
	if err != nil {
		return nil, err
	}

	setInt64(&m.EmisorID, in.EmisorID)
	setInt64(&m.ReceptorID, in.ReceptorID)
	setInt64(&m.ServicioID, in.ServicioID)
	setString(&m.Texto, in.Mensaje)
	if in.Leido != nil {
		m.Leido = *in.Leido
	}

	if err := uc.repo.Update(ctx, m); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMensajeNotFound
		}
		return nil, err
	}
	return uc.rel.Mensaje(ctx, m)
}

func (uc *MensajeUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrMensajeNotFound
	}
	return err
}
