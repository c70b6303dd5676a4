package entity

import "time"

// Valoracion puntuación (1..5) que un usuario da a otro tras una transacción.
type Valoracion struct {
	ID            int64
	TransaccionID int64
	ValoradorID   int64
	ValoradoID    int64
	Puntuacion    int
	Comentario    *string
	CreatedAt     time.Time
}
