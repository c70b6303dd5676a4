package entity

import "github.com/shopspring/decimal"

// Roles (tabla roles). El registro público siempre asigna RolUsuario.
const (
	RolAdmin       int64 = 1
	RolProfesional int64 = 2
	RolUsuario     int64 = 3
)

// DefaultHorasSaldo saldo inicial de horas de un usuario nuevo.
const DefaultHorasSaldo = 5

// User representa un usuario del banco de tiempo (tabla usuarios).
type User struct {
	ID           int64
	Nombre       string
	Apellido     string
	Email        string
	PasswordHash string // bcrypt, nunca texto plano
	RolID        int64
	ProvinciaID  *int64
	CiudadID     *int64
	Descripcion  *string
	HorasSaldo   int
	Valoracion   decimal.Decimal // NUMERIC(3,2), media de puntuaciones
	RutaImg      *string
}

// NombreCompleto nombre y apellido separados por espacio.
func (u *User) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}
