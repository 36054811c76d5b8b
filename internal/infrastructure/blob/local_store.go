package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Catalogo-api/internal/domain/storage"
)

// publicPrefix es el segmento con el que se publican las rutas de los blobs
// (se sirve estático bajo /storage).
const publicPrefix = "storage"

var _ storage.BlobStore = (*LocalStore)(nil)

// LocalStore guarda los blobs en disco bajo un directorio base. Las claves son
// rutas relativas con barras ("category-photos/ab12.png"); la ruta pública que
// devuelve Store lleva el prefijo "storage/".
type LocalStore struct {
	base string
}

// NewLocalStore construye el store y crea el directorio base si no existe.
func NewLocalStore(base string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio base: %w", err)
	}
	return &LocalStore{base: base}, nil
}

// Store escribe los bytes bajo la clave, creando los subdirectorios necesarios.
// Una clave existente se sobreescribe.
func (s *LocalStore) Store(ctx context.Context, key string, data []byte) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	full := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio del blob: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("escribir blob: %w", err)
	}
	return path.Join(publicPrefix, key), nil
}

// Delete borra el blob de la ruta pública indicada. Una ruta inexistente no es
// un error (borrado idempotente).
func (s *LocalStore) Delete(ctx context.Context, publicPath string) error {
	key := strings.TrimPrefix(publicPath, publicPrefix+"/")
	if err := validKey(key); err != nil {
		return err
	}
	full := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("borrar blob: %w", err)
	}
	return nil
}

// validKey rechaza claves vacías, absolutas o con path traversal.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("clave de blob vacía")
	}
	if strings.HasPrefix(key, "/") || path.Clean("/"+key) != "/"+key {
		return fmt.Errorf("clave de blob inválida: %q", key)
	}
	return nil
}
