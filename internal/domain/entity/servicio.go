package entity

// Tipos de servicio.
const (
	TipoOferta  = "oferta"
	TipoDemanda = "demanda"
)

// Estados de un servicio. Cualquier estado puede seguir a cualquier otro.
const (
	ServicioActivo     = "activo"
	ServicioEnProceso  = "en_proceso"
	ServicioFinalizado = "finalizado"
	ServicioCancelado  = "cancelado"
)

// Servicio oferta o demanda publicada por un usuario (tabla servicios).
type Servicio struct {
	ID             int64
	UsuarioID      int64
	CategoriaID    int64
	Tipo           string
	Titulo         string
	Descripcion    string
	ProvinciaID    int64
	CiudadID       int64
	HorasEstimadas int
	Estado         string
	RutaImg        *string
}
