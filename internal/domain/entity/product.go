package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Pertenece a una Category viva
// (FK en la base de datos). Price se valida como valor entero en la capa de
// aplicación aunque la columna sea NUMERIC.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string // ruta relativa del blob store o ""
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
