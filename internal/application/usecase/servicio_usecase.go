package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// ServicioUseCase casos de uso CRUD para servicios.
type ServicioUseCase struct {
	repo   repository.ServicioRepository
	users  repository.UserRepository
	rel    *Relations
	val    *validation.Validator
	images ports.ImageStore
}

// NewServicioUseCase construye el caso de uso.
func NewServicioUseCase(
	repo repository.ServicioRepository,
	users repository.UserRepository,
	rel *Relations,
	val *validation.Validator,
	images ports.ImageStore,
) *ServicioUseCase {
	return &ServicioUseCase{repo: repo, users: users, rel: rel, val: val, images: images}
}

// List todos los servicios.
func (uc *ServicioUseCase) List(ctx context.Context) ([]dto.ServicioResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.rel.Servicios(ctx, list)
}

// ListByUsuario servicios publicados por un usuario; domain.ErrUserNotFound si el usuario no existe.
func (uc *ServicioUseCase) ListByUsuario(ctx context.Context, usuarioID int64) ([]dto.ServicioResponse, error) {
	if err := ensureUser(ctx, uc.users, usuarioID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return uc.rel.Servicios(ctx, list)
}

// GetByID obtiene un servicio por ID.
func (uc *ServicioUseCase) GetByID(ctx context.Context, id int64) (*dto.ServicioResponse, error) {
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.rel.Servicio(ctx, s)
}

func (uc *ServicioUseCase) find(ctx context.Context, id int64) (*entity.Servicio, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrServicioNotFound
	}
	return s, nil
}

// Create crea un servicio; estado activo si no se indica.
func (uc *ServicioUseCase) Create(ctx context.Context, in dto.CreateServicioRequest) (*dto.ServicioResponse, error) {
	err := uc.val.Check(ctx, in).
		Exists("usuario_id", repository.TablaUsuarios, &in.UsuarioID).
		Exists("categoria_id", repository.TablaCategorias, &in.CategoriaID).
		Exists("provincia_id", repository.TablaProvincias, &in.ProvinciaID).
		Exists("ciudad_id", repository.TablaCiudades, &in.CiudadID).
		Image("img", in.Img).
		Err()
	if err != nil {
		return nil, err
	}
	s := &entity.Servicio{
		UsuarioID:      in.UsuarioID,
		CategoriaID:    in.CategoriaID,
		Tipo:           in.Tipo,
		Titulo:         in.Titulo,
		Descripcion:    in.Descripcion,
		ProvinciaID:    in.ProvinciaID,
		CiudadID:       in.CiudadID,
		HorasEstimadas: in.HorasEstimadas,
		Estado:         entity.ServicioActivo,
	}
	if in.Estado != nil {
		s.Estado = *in.Estado
	}
	if s.RutaImg, err = uploadImage(ctx, uc.images, in.Img); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return uc.rel.Servicio(ctx, s)
}

// Update aplica solo los campos presentes.
func (uc *ServicioUseCase) Update(ctx context.Context, id int64, in dto.UpdateServicioRequest) (*dto.ServicioResponse, error) {
	s, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	err = uc.val.Check(ctx, in).
		Exists("usuario_id", repository.TablaUsuarios, in.UsuarioID).
		Exists("categoria_id", repository.TablaCategorias, in.CategoriaID).
		Exists("provincia_id", repository.TablaProvincias, in.ProvinciaID).
		Exists("ciudad_id", repository.TablaCiudades, in.CiudadID).
		Image("img", in.Img).
		Err()
	if err != nil {
		return nil, err
	}

	setInt64(&s.UsuarioID, in.UsuarioID)
	setInt64(&s.CategoriaID, in.CategoriaID)
	setString(&s.Tipo, in.Tipo)
	setString(&s.Titulo, in.Titulo)
	setString(&s.Descripcion, in.Descripcion)
	setInt64(&s.ProvinciaID, in.ProvinciaID)
	setInt64(&s.CiudadID, in.CiudadID)
	setInt(&s.HorasEstimadas, in.HorasEstimadas)
	setString(&s.Estado, in.Estado)
	if in.Img != nil {
		if s.RutaImg, err = uploadImage(ctx, uc.images, in.Img); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrServicioNotFound
		}
		return nil, err
	}
	return uc.rel.Servicio(ctx, s)
}

// Delete elimina un servicio sin transacciones ni mensajes.
func (uc *ServicioUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrServicioNotFound
	}
	return err
}

// ensureUser domain.ErrUserNotFound si el usuario no existe.
func ensureUser(ctx context.Context, users repository.UserRepository, id int64) error {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt64(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
