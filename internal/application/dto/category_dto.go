package dto

import "time"

// CategoryInput campos validados de una categoría (entrada para crear/actualizar).
type CategoryInput struct {
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
}

// CategoryResponse salida de una categoría. Image es la URL absoluta ("" si no hay imagen).
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse lista de categorías. Items siempre es un array (vacío si no hay datos).
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
