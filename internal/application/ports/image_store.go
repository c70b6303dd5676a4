package ports

import "context"

// Image fichero de imagen ya validado (tipo y tamaño) listo para subir.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStore define el puerto de salida para alojar imágenes de usuarios y servicios.
// Upload devuelve la URL pública; los fallos envuelven domain.ErrUpload.
// La llamada es síncrona: el contexto debe llevar el timeout de la petición.
type ImageStore interface {
	Upload(ctx context.Context, img Image) (string, error)
}
