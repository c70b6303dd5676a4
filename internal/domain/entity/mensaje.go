package entity

import "time"

// Mensaje entre dos usuarios a propósito de un servicio.
type Mensaje struct {
	ID         int64
	EmisorID   int64
	ReceptorID int64
	ServicioID int64
	Texto      string
	Leido      bool
	CreatedAt  time.Time
}
