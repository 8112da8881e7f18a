package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrValidation   = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrConnection   = errors.New("conexión a base de datos no disponible")
	ErrAuditWrite   = errors.New("no se pudo registrar la auditoría")
)

// ValidationError describe un dato de entrada rechazado. El usuario puede corregirlo y reintentar.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye un ValidationError para el campo indicado.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Unwrap permite errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError indica que una restricción de integridad referencial bloquea la operación.
// Count es la cantidad de registros dependientes que la bloquean.
type ConflictError struct {
	Reason string
	Count  int
}

// NewConflictError construye un ConflictError; format recibe el conteo como %d.
func NewConflictError(count int, format string) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, count), Count: count}
}

func (e *ConflictError) Error() string { return e.Reason }

// Unwrap permite errors.Is(err, ErrConflict).
func (e *ConflictError) Unwrap() error { return ErrConflict }

// IsRecoverable informa si el error lo puede resolver el usuario (validación, conflicto, no encontrado,
// autorización). El resto aborta la operación con un mensaje genérico.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden)
}
