package dto

import "time"

// CreateTransaccionRequest alta de una transacción. fecha_confirmacion admite RFC 3339 o "2006-01-02[ 15:04:05]".
type CreateTransaccionRequest struct {
	ServicioID           int64   `json:"servicio_id" validate:"required"`
	UsuarioSolicitanteID int64   `json:"usuario_solicitante_id" validate:"required"`
	UsuarioOfertanteID   int64   `json:"usuario_ofertante_id" validate:"required"`
	Horas                int     `json:"horas" validate:"required,min=1"`
	Estado               *string `json:"estado" validate:"omitempty,oneof=pendiente confirmado cancelado"`
	FechaConfirmacion    *string `json:"fecha_confirmacion" validate:"omitempty,fecha"`
}

// UpdateTransaccionRequest actualización parcial de una transacción.
type UpdateTransaccionRequest struct {
	ServicioID           *int64  `json:"servicio_id"`
	UsuarioSolicitanteID *int64  `json:"usuario_solicitante_id"`
	UsuarioOfertanteID   *int64  `json:"usuario_ofertante_id"`
	Horas                *int    `json:"horas" validate:"omitempty,min=1"`
	Estado               *string `json:"estado" validate:"omitempty,oneof=pendiente confirmado cancelado"`
	FechaConfirmacion    *string `json:"fecha_confirmacion" validate:"omitempty,fecha"`
}

// TransaccionResponse salida de una transacción con servicio y usuarios.
type TransaccionResponse struct {
	ID                   int64             `json:"id"`
	ServicioID           int64             `json:"servicio_id"`
	UsuarioSolicitanteID int64             `json:"usuario_solicitante_id"`
	UsuarioOfertanteID   int64             `json:"usuario_ofertante_id"`
	Horas                int               `json:"horas"`
	Estado               string            `json:"estado"`
	FechaConfirmacion    *time.Time        `json:"fecha_confirmacion"`
	CreatedAt            time.Time         `json:"created_at"`
	Servicio             *ServicioResponse `json:"servicio,omitempty"`
	UsuarioSolicitante   *UserResponse     `json:"usuario_solicitante,omitempty"`
	UsuarioOfertante     *UserResponse     `json:"usuario_ofertante,omitempty"`
}
