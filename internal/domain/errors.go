package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	// ErrMissingRelation indica que una fila apunta a una relación que ya no existe.
	// Es un defecto del servidor, no un error del usuario.
	ErrMissingRelation = errors.New("relación requerida ausente")
)

// ValidationError agrupa los mensajes de validación por campo.
// Fields nunca está vacío cuando el error se retorna.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación fallida en %d campo(s)", len(e.Fields))
}

// NewValidationError construye un error de validación con un solo campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// StorageError indica que una operación del blob store falló (escritura o borrado).
type StorageError struct {
	Op  string // "store" | "delete"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("almacenamiento de archivos (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PersistenceError indica que la escritura de la fila fue rechazada por la base
// de datos (ej. violación de clave foránea en category_id).
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia rechazada: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
