package entity

import "time"

// Estados de una transacción.
const (
	TransaccionPendiente  = "pendiente"
	TransaccionConfirmada = "confirmado"
	TransaccionCancelada  = "cancelado"
)

// Transaccion intercambio de horas entre un solicitante y un ofertante sobre un servicio.
// FechaConfirmacion no está ligada al estado.
type Transaccion struct {
	ID                   int64
	ServicioID           int64
	UsuarioSolicitanteID int64
	UsuarioOfertanteID   int64
	Horas                int
	Estado               string
	FechaConfirmacion    *time.Time
	CreatedAt            time.Time
}
