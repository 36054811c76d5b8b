package storage

import "context"

// BlobStore es el puerto de almacenamiento de archivos subidos (disco local u
// object store). Store escribe los bytes bajo la clave indicada y devuelve la
// ruta relativa pública del blob; si la clave ya existe, se sobreescribe.
// Delete es idempotente: borrar una ruta inexistente no es un error.
type BlobStore interface {
	Store(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}
