package usecase

import (
	"crypto/md5"
	"fmt"
	"path/filepath"
	"strings"
)

// Prefijos de almacenamiento por tipo de entidad.
const (
	categoryPhotoPrefix = "category-photos"
	productPhotoPrefix  = "products-photos"
)

// blobKey deriva la clave del blob: md5 del nombre original del archivo (no del
// contenido) más la extensión original, bajo el prefijo del tipo de entidad.
// Dos archivos con el mismo nombre original comparten clave y el segundo
// sobreescribe al primero; es deduplicación por nombre, no direccionada por contenido.
func blobKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	sum := md5.Sum([]byte(filename))
	return fmt.Sprintf("%s/%x%s", prefix, sum, ext)
}

// publicImageURL compone la URL absoluta de la imagen a partir de la ruta
// relativa guardada en la fila. Imagen vacía produce URL vacía.
func publicImageURL(baseURL, image string) string {
	if image == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + image
}
