package entity

import "time"

// Category representa una categoría del catálogo. Image guarda la ruta relativa
// devuelta por el blob store (ej. "storage/category-photos/ab12.png") o "" si no hay imagen.
type Category struct {
	ID          int64
	Name        string
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
