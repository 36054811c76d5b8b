package entity

import "time"

// Roles de usuario del punto de venta.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User usuario de la aplicación. El rol decide qué operaciones del catálogo puede ejecutar.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "cajero"
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
