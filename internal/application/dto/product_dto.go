package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductInput campos validados de un producto (entrada para crear/actualizar).
// CategoryID y Price se parsean desde el formulario crudo en la capa de validación;
// Price debe ser un valor entero aunque el tipo sea decimal.
type ProductInput struct {
	CategoryID  int64  `form:"category_id" validate:"required"`
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	Price       decimal.Decimal
}

// ProductResponse salida de un producto. CategoryID proviene de la categoría
// resuelta (relación cargada de forma anticipada), no del valor crudo de la fila.
type ProductResponse struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos. Items siempre es un array (vacío si no hay datos).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
