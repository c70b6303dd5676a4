package imagestore

import (
	"context"
	"fmt"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

var _ ports.ImageStore = Disabled{}

// Disabled rechaza toda subida: no hay almacenamiento configurado.
type Disabled struct{}

func (Disabled) Upload(context.Context, ports.Image) (string, error) {
	return "", fmt.Errorf("%w: almacenamiento de imágenes no configurado", domain.ErrUpload)
}
