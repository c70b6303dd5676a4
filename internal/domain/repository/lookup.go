package repository

import "context"

// Tablas que admiten comprobación de existencia por id.
const (
	TablaUsuarios      = "usuarios"
	TablaServicios     = "servicios"
	TablaTransacciones = "transacciones"
	TablaProvincias    = "provincias"
	TablaCiudades      = "ciudades"
	TablaCategorias    = "categorias"
	TablaRoles         = "roles"
)

// ReferenceLookup consultas que necesita el validador: existencia de claves foráneas y unicidad de email.
type ReferenceLookup interface {
	Exists(ctx context.Context, table string, id int64) (bool, error)
	// EmailTaken indica si otro usuario (distinto de exceptID) ya usa el email.
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}
