package dto

import "time"

// CreateMensajeRequest alta de un mensaje.
type CreateMensajeRequest struct {
	EmisorID   int64  `json:"emisor_id" validate:"required"`
	ReceptorID int64  `json:"receptor_id" validate:"required"`
	ServicioID int64  `json:"servicio_id" validate:"required"`
	Mensaje    string `json:"mensaje" validate:"required"`
	Leido      *bool  `json:"leido"`
}

// UpdateMensajeRequest actualización parcial de un mensaje.
type UpdateMensajeRequest struct {
	EmisorID   *int64  `json:"emisor_id"`
	ReceptorID *int64  `json:"receptor_id"`
	ServicioID *int64  `json:"servicio_id"`
	Mensaje    *string `json:"mensaje" validate:"omitempty,filled"`
	Leido      *bool   `json:"leido"`
}

// MensajeResponse salida de un mensaje con emisor, receptor y servicio.
type MensajeResponse struct {
	ID         int64             `json:"id"`
	EmisorID   int64             `json:"emisor_id"`
	ReceptorID int64             `json:"receptor_id"`
	ServicioID int64             `json:"servicio_id"`
	Mensaje    string            `json:"mensaje"`
	Leido      bool              `json:"leido"`
	CreatedAt  time.Time         `json:"created_at"`
	Emisor     *UserResponse     `json:"emisor,omitempty"`
	Receptor   *UserResponse     `json:"receptor,omitempty"`
	Servicio   *ServicioResponse `json:"servicio,omitempty"`
}
