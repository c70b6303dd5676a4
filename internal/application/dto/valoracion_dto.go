package dto

import "time"

// CreateValoracionRequest alta de una valoración.
type CreateValoracionRequest struct {
	TransaccionID int64   `json:"transaccion_id" validate:"required"`
	ValoradorID   int64   `json:"valorador_id" validate:"required"`
	ValoradoID    int64   `json:"valorado_id" validate:"required"`
	Puntuacion    int     `json:"puntuacion" validate:"required,min=1,max=5"`
	Comentario    *string `json:"comentario"`
}

// UpdateValoracionRequest actualización parcial de una valoración.
type UpdateValoracionRequest struct {
	TransaccionID *int64  `json:"transaccion_id"`
	ValoradorID   *int64  `json:"valorador_id"`
	ValoradoID    *int64  `json:"valorado_id"`
	Puntuacion    *int    `json:"puntuacion" validate:"omitempty,min=1,max=5"`
	Comentario    *string `json:"comentario"`
}

// ValoracionResponse salida de una valoración con transacción y usuarios.
type ValoracionResponse struct {
	ID            int64                `json:"id"`
	TransaccionID int64                `json:"transaccion_id"`
	ValoradorID   int64                `json:"valorador_id"`
	ValoradoID    int64                `json:"valorado_id"`
	Puntuacion    int                  `json:"puntuacion"`
	Comentario    *string              `json:"comentario"`
	CreatedAt     time.Time            `json:"created_at"`
	Transaccion   *TransaccionResponse `json:"transaccion,omitempty"`
	Valorador     *UserResponse        `json:"valorador,omitempty"`
	Valorado      *UserResponse        `json:"valorado,omitempty"`
}
