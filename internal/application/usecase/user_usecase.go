package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	rel    *Relations
	val    *validation.Validator
	images ports.ImageStore
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, rel *Relations, val *validation.Validator, images ports.ImageStore) *UserUseCase {
	return &UserUseCase{repo: repo, rel: rel, val: val, images: images}
}

// List todos los usuarios con provincia, ciudad y rol.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.rel.Users(ctx, list)
}

// GetByID obtiene un usuario por ID. domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.rel.User(ctx, user)
}

func (uc *UserUseCase) find(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Register alta pública: provincia y ciudad obligatorias, rol siempre RolUsuario.
func (uc *UserUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	err := uc.val.Check(ctx, in).
		Exists("provincia_id", repository.TablaProvincias, &in.ProvinciaID).
		Exists("ciudad_id", repository.TablaCiudades, &in.CiudadID).
		Exists("rol_id", repository.TablaRoles, in.RolID).
		UniqueEmail("email", &in.Email, 0).
		Image("img", in.Img).
		Err()
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Nombre:      in.Nombre,
		Apellido:    in.Apellido,
		Email:       in.Email,
		RolID:       entity.RolUsuario,
		ProvinciaID: &in.ProvinciaID,
		CiudadID:    &in.CiudadID,
		Descripcion: in.Descripcion,
	}
	return uc.create(ctx, user, in.Password, in.HorasSaldo, in.Valoracion, in.Img)
}

// Create alta desde administración: rol 2 o 3; provincia y ciudad opcionales.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	err := uc.val.Check(ctx, in).
		Exists("rol_id", repository.TablaRoles, &in.RolID).
		Exists("provincia_id", repository.TablaProvincias, in.ProvinciaID).
		Exists("ciudad_id", repository.TablaCiudades, in.CiudadID).
		UniqueEmail("email", &in.Email, 0).
		Image("img", in.Img).
		Err()
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Nombre:      in.Nombre,
		Apellido:    in.Apellido,
		Email:       in.Email,
		RolID:       in.RolID,
		ProvinciaID: in.ProvinciaID,
		CiudadID:    in.CiudadID,
		Descripcion: in.Descripcion,
	}
	return uc.create(ctx, user, in.Password, in.HorasSaldo, in.Valoracion, in.Img)
}

// create aplica valores por defecto, sube la imagen y persiste. La petición ya está validada.
func (uc *UserUseCase) create(ctx context.Context, user *entity.User, password string, horas *int, valoracion *float64, img *ports.Image) (*dto.UserResponse, error) {
	user.HorasSaldo = entity.DefaultHorasSaldo
	if horas != nil {
		user.HorasSaldo = *horas
	}
	if valoracion != nil {
		user.Valoracion = decimal.NewFromFloat(*valoracion).Round(2)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	url, err := uploadImage(ctx, uc.images, img)
	if err != nil {
		return nil, err
	}
	user.RutaImg = url

	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, emailConflict(err)
	}
	return uc.rel.User(ctx, user)
}

// Update aplica solo los campos presentes. Un email propio no cuenta como duplicado.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	err = uc.val.Check(ctx, in).
		Exists("rol_id", repository.TablaRoles, in.RolID).
		Exists("provincia_id", repository.TablaProvincias, in.ProvinciaID).
		Exists("ciudad_id", repository.TablaCiudades, in.CiudadID).
		UniqueEmail("email", in.Email, id).
		Image("img", in.Img).
		Err()
	if err != nil {
		return nil, err
	}

	if in.Nombre != nil {
		user.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		user.Apellido = *in.Apellido
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.RolID != nil {
		user.RolID = *in.RolID
	}
	if in.ProvinciaID != nil {
		user.ProvinciaID = in.ProvinciaID
	}
	if in.CiudadID != nil {
		user.CiudadID = in.CiudadID
	}
	if in.Descripcion != nil {
		user.Descripcion = in.Descripcion
	}
	if in.HorasSaldo != nil {
		user.HorasSaldo = *in.HorasSaldo
	}
	if in.Valoracion != nil {
		user.Valoracion = decimal.NewFromFloat(*in.Valoracion).Round(2)
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Img != nil {
		url, err := uploadImage(ctx, uc.images, in.Img)
		if err != nil {
			return nil, err
		}
		user.RutaImg = url
	}

	if err := uc.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, emailConflict(err)
	}
	return uc.rel.User(ctx, user)
}

// Delete elimina un usuario sin registros dependientes.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

// ChangePassword sustituye la contraseña; domain.ErrSamePassword si coincide con la actual.
func (uc *UserUseCase) ChangePassword(ctx context.Context, id int64, in dto.ChangePasswordRequest) error {
	user, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.val.Check(ctx, in).Err(); err != nil {
		return err
	}
	if PasswordMatches(user.PasswordHash, in.Password) {
		return domain.ErrSamePassword
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

// emailConflict traduce la violación de unicidad (carrera entre validación e INSERT) a error de campo.
func emailConflict(err error) error {
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return validation.Field("email", validation.EmailTakenMessage)
	}
	return err
}

// uploadImage sube img si se envió. nil sin imagen.
func uploadImage(ctx context.Context, store ports.ImageStore, img *ports.Image) (*string, error) {
	if img == nil {
		return nil, nil
	}
	url, err := store.Upload(ctx, *img)
	if err != nil {
		if errors.Is(err, domain.ErrUpload) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	return &url, nil
}
