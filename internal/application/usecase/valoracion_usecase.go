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

// ValoracionUseCase casos de uso CRUD para valoraciones.
type ValoracionUseCase struct {
	repo  repository.ValoracionRepository
	users repository.UserRepository
	rel   *Relations
	val   *validation.Validator
}

// NewValoracionUseCase construye el caso de uso.
func NewValoracionUseCase(repo repository.ValoracionRepository, users repository.UserRepository, rel *Relations, val *validation.Validator) *ValoracionUseCase {
	return &ValoracionUseCase{repo: repo, users: users, rel: rel, val: val}
}

func (uc *ValoracionUseCase) List(ctx context.Context) ([]dto.ValoracionResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.rel.Valoraciones(ctx, list)
}

// ListByUsuario valoraciones recibidas por el usuario.
func (uc *ValoracionUseCase) ListByUsuario(ctx context.Context, usuarioID int64) ([]dto.ValoracionResponse, error) {
	if err := ensureUser(ctx, uc.users, usuarioID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByValorado(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return uc.rel.Valoraciones(ctx, list)
}

func (uc *ValoracionUseCase) GetByID(ctx context.Context, id int64) (*dto.ValoracionResponse, error) {
	v, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.rel.Valoracion(ctx, v)
}

func (uc *ValoracionUseCase) find(ctx context.Context, id int64) (*entity.Valoracion, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrValoracionNotFound
	}
	return v, nil
}

// Create registra una valoración (puntuación 1..5).
func (uc *ValoracionUseCase) Create(ctx context.Context, in dto.CreateValoracionRequest) (*dto.ValoracionResponse, error) {
	err := uc.val.Check(ctx, in).
		Exists("transaccion_id", repository.TablaTransacciones, &in.TransaccionID).
		Exists("valorador_id", repository.TablaUsuarios, &in.ValoradorID).
		Exists("valorado_id", repository.TablaUsuarios, &in.ValoradoID).
		Err()
	if err != nil {
		return nil, err
	}
	v := &entity.Valoracion{
		TransaccionID: in.TransaccionID,
		ValoradorID:   in.ValoradorID,
		ValoradoID:    in.ValoradoID,
		Puntuacion:    in.Puntuacion,
		Comentario:    in.Comentario,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return uc.rel.Valoracion(ctx, v)
}

// Update aplica solo los campos presentes.
func (uc *ValoracionUseCase) Update(ctx context.Context, id int64, in dto.UpdateValoracionRequest) (*dto.ValoracionResponse, error) {
	v, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	err = uc.val.Check(ctx, in).
		Exists("transaccion_id", repository.TablaTransacciones, in.TransaccionID).
		Exists("valorador_id", repository.TablaUsuarios, in.ValoradorID).
		Exists("valorado_id", repository.TablaUsuarios, in.ValoradoID).
		Err()
	if err != nil {
		return nil, err
	}

	setInt64(&v.TransaccionID, in.TransaccionID)
	setInt64(&v.ValoradorID, in.ValoradorID)
	setInt64(&v.ValoradoID, in.ValoradoID)
	setInt(&v.Puntuacion, in.Puntuacion)
	if in.Comentario != nil {
		v.Comentario = in.Comentario
	}

	if err := uc.repo.Update(ctx, v); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrValoracionNotFound
		}
		return nil, err
	}
	return uc.rel.Valoracion(ctx, v)
}

func (uc *ValoracionUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrValoracionNotFound
	}
	return err
}
