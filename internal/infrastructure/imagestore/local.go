package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

var _ ports.ImageStore = (*LocalDisk)(nil)

// LocalDisk guarda las imágenes como <uuid><ext> en un directorio servido estáticamente.
type LocalDisk struct {
	dir       string
	publicURL string
}

// NewLocalDisk crea el directorio si no existe. publicURL es el prefijo bajo el que se sirve.
func NewLocalDisk(dir, publicURL string) (*LocalDisk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return &LocalDisk{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (l *LocalDisk) Upload(_ context.Context, img ports.Image) (string, error) {
	name := uuid.NewString() + extension(img)
	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	return l.publicURL + "/" + name, nil
}

// extension según el tipo detectado; si no se conoce, la del nombre original.
func extension(img ports.Image) string {
	if img.ContentType != "" {
		if mt := mimetype.Lookup(img.ContentType); mt != nil && mt.Extension() != "" {
			return mt.Extension()
		}
	}
	return strings.ToLower(filepath.Ext(img.Filename))
}
