package dto

import "github.com/jhoicas/bancotiempo-api/internal/application/ports"

// CreateServicioRequest alta de un servicio.
type CreateServicioRequest struct {
	UsuarioID      int64        `json:"usuario_id" form:"usuario_id" validate:"required"`
	CategoriaID    int64        `json:"categoria_id" form:"categoria_id" validate:"required"`
	Tipo           string       `json:"tipo" form:"tipo" validate:"required,oneof=oferta demanda"`
	Titulo         string       `json:"titulo" form:"titulo" validate:"required,max=255"`
	Descripcion    string       `json:"descripcion" form:"descripcion" validate:"required"`
	ProvinciaID    int64        `json:"provincia_id" form:"provincia_id" validate:"required"`
	CiudadID       int64        `json:"ciudad_id" form:"ciudad_id" validate:"required"`
	HorasEstimadas int          `json:"horas_estimadas" form:"horas_estimadas" validate:"required,min=1"`
	Estado         *string      `json:"estado" form:"estado" validate:"omitempty,oneof=activo en_proceso finalizado cancelado"`
	Img            *ports.Image `json:"-" form:"-"`
}

// UpdateServicioRequest actualización parcial de un servicio.
type UpdateServicioRequest struct {
	UsuarioID      *int64       `json:"usuario_id" form:"usuario_id"`
	CategoriaID    *int64       `json:"categoria_id" form:"categoria_id"`
	Tipo           *string      `json:"tipo" form:"tipo" validate:"omitempty,oneof=oferta demanda"`
	Titulo         *string      `json:"titulo" form:"titulo" validate:"omitempty,filled,max=255"`
	Descripcion    *string      `json:"descripcion" form:"descripcion" validate:"omitempty,filled"`
	ProvinciaID    *int64       `json:"provincia_id" form:"provincia_id"`
	CiudadID       *int64       `json:"ciudad_id" form:"ciudad_id"`
	HorasEstimadas *int         `json:"horas_estimadas" form:"horas_estimadas" validate:"omitempty,min=1"`
	Estado         *string      `json:"estado" form:"estado" validate:"omitempty,oneof=activo en_proceso finalizado cancelado"`
	Img            *ports.Image `json:"-" form:"-"`
}

// ServicioResponse salida de un servicio con sus relaciones.
type ServicioResponse struct {
	ID             int64              `json:"id"`
	UsuarioID      int64              `json:"usuario_id"`
	CategoriaID    int64              `json:"categoria_id"`
	Tipo           string             `json:"tipo"`
	Titulo         string             `json:"titulo"`
	Descripcion    string             `json:"descripcion"`
	ProvinciaID    int64              `json:"provincia_id"`
	CiudadID       int64              `json:"ciudad_id"`
	HorasEstimadas int                `json:"horas_estimadas"`
	Estado         string             `json:"estado"`
	RutaImg        *string            `json:"ruta_img"`
	Usuario        *UserResponse      `json:"usuario,omitempty"`
	Categoria      *CategoriaResponse `json:"categoria,omitempty"`
	Provincia      *ProvinciaResponse `json:"provincia,omitempty"`
	Ciudad         *PoblacionResponse `json:"ciudad,omitempty"`
}
