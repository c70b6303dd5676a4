package dto

// ProvinciaResponse provincia.
type ProvinciaResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// PoblacionResponse población con su provincia.
type PoblacionResponse struct {
	ID          int64              `json:"id"`
	Nombre      string             `json:"nombre"`
	ProvinciaID int64              `json:"provincia_id"`
	Provincia   *ProvinciaResponse `json:"provincia,omitempty"`
}

// CategoriaResponse categoría de servicios.
type CategoriaResponse struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

// RolResponse rol de usuario.
type RolResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}
