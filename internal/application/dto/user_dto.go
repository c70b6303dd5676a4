package dto

import "github.com/jhoicas/bancotiempo-api/internal/application/ports"

// RegisterRequest registro público. rol_id se acepta pero siempre se fuerza a 3.
type RegisterRequest struct {
	Nombre      string       `json:"nombre" form:"nombre" validate:"required,max=100"`
	Apellido    string       `json:"apellido" form:"apellido" validate:"required,max=100"`
	Email       string       `json:"email" form:"email" validate:"required,email,max=150"`
	Password    string       `json:"password" form:"password" validate:"required,min=6"`
	RolID       *int64       `json:"rol_id" form:"rol_id"`
	ProvinciaID int64        `json:"provincia_id" form:"provincia_id" validate:"required"`
	CiudadID    int64        `json:"ciudad_id" form:"ciudad_id" validate:"required"`
	Descripcion *string      `json:"descripcion" form:"descripcion" validate:"omitempty,max=255"`
	HorasSaldo  *int         `json:"horas_saldo" form:"horas_saldo"`
	Valoracion  *float64     `json:"valoracion" form:"valoracion" validate:"omitempty,min=0,max=5"`
	Img         *ports.Image `json:"-" form:"-"`
}

// CreateUserRequest alta de usuario desde administración (rol 2 o 3).
type CreateUserRequest struct {
	Nombre      string       `json:"nombre" form:"nombre" validate:"required,max=100"`
	Apellido    string       `json:"apellido" form:"apellido" validate:"required,max=100"`
	Email       string       `json:"email" form:"email" validate:"required,email,max=150"`
	Password    string       `json:"password" form:"password" validate:"required,min=6"`
	RolID       int64        `json:"rol_id" form:"rol_id" validate:"required,oneof=2 3"`
	ProvinciaID *int64       `json:"provincia_id" form:"provincia_id"`
	CiudadID    *int64       `json:"ciudad_id" form:"ciudad_id"`
	Descripcion *string      `json:"descripcion" form:"descripcion" validate:"omitempty,max=255"`
	HorasSaldo  *int         `json:"horas_saldo" form:"horas_saldo"`
	Valoracion  *float64     `json:"valoracion" form:"valoracion" validate:"omitempty,min=0,max=5"`
	Img         *ports.Image `json:"-" form:"-"`
}

// UpdateUserRequest actualización parcial: solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Nombre      *string      `json:"nombre" form:"nombre" validate:"omitempty,filled,max=100"`
	Apellido    *string      `json:"apellido" form:"apellido" validate:"omitempty,filled,max=100"`
	Email       *string      `json:"email" form:"email" validate:"omitempty,email,max=150"`
	Password    *string      `json:"password" form:"password" validate:"omitempty,min=6"`
	RolID       *int64       `json:"rol_id" form:"rol_id" validate:"omitempty,oneof=2 3"`
	ProvinciaID *int64       `json:"provincia_id" form:"provincia_id"`
	CiudadID    *int64       `json:"ciudad_id" form:"ciudad_id"`
	Descripcion *string      `json:"descripcion" form:"descripcion" validate:"omitempty,max=255"`
	HorasSaldo  *int         `json:"horas_saldo" form:"horas_saldo"`
	Valoracion  *float64     `json:"valoracion" form:"valoracion" validate:"omitempty,min=0,max=5"`
	Img         *ports.Image `json:"-" form:"-"`
}

// ChangePasswordRequest nueva contraseña en texto plano.
type ChangePasswordRequest struct {
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password). Las relaciones solo aparecen si se cargaron.
type UserResponse struct {
	ID          int64              `json:"id"`
	Nombre      string             `json:"nombre"`
	Apellido    string             `json:"apellido"`
	Email       string             `json:"email"`
	RolID       int64              `json:"rol_id"`
	ProvinciaID *int64             `json:"provincia_id"`
	CiudadID    *int64             `json:"ciudad_id"`
	Descripcion *string            `json:"descripcion"`
	HorasSaldo  int                `json:"horas_saldo"`
	Valoracion  float64            `json:"valoracion"`
	RutaImg     *string            `json:"ruta_img"`
	Provincia   *ProvinciaResponse `json:"provincia,omitempty"`
	Ciudad      *PoblacionResponse `json:"ciudad,omitempty"`
	Rol         *RolResponse       `json:"rol,omitempty"`
}

// AuthResponse token emitido en registro y login.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   string       `json:"expires_at"`
	User        UserResponse `json:"user"`
}
