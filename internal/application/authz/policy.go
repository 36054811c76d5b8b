package authz

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// Capability es un permiso nombrado sobre el catálogo.
type Capability string

const (
	CapabilityCreate Capability = "create"
	CapabilityUpdate Capability = "update"
	CapabilityDelete Capability = "delete"
)

// Policy resuelve qué roles pueden ejecutar cada capability.
// Crear y actualizar: admin y cajero. Borrar: solo admin.
type Policy struct {
	allowed map[Capability][]string
}

// NewPolicy construye la política del catálogo.
func NewPolicy() *Policy {
	return &Policy{
		allowed: map[Capability][]string{
			CapabilityCreate: {entity.RoleCajero, entity.RoleAdmin},
			CapabilityUpdate: {entity.RoleCajero, entity.RoleAdmin},
			CapabilityDelete: {entity.RoleAdmin},
		},
	}
}

// Can indica si el rol puede ejecutar la capability.
func (p *Policy) Can(role string, cap Capability) bool {
	for _, r := range p.allowed[cap] {
		if r == role {
			return true
		}
	}
	return false
}
