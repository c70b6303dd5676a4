package entity

// Provincia tabla de referencia provincias.
type Provincia struct {
	ID     int64
	Nombre string
}

// Poblacion municipio de una provincia (tabla ciudades).
type Poblacion struct {
	ID          int64
	Nombre      string
	ProvinciaID int64
}

// Categoria categoría de servicios.
type Categoria struct {
	ID          int64
	Nombre      string
	Descripcion *string
}

// Rol rol de usuario.
type Rol struct {
	ID     int64
	Nombre string
}
