package entity

import "time"

// Acciones de auditoría.
const (
	AuditCreated = "created"
	AuditUpdated = "updated"
	AuditDeleted = "deleted"
)

// Tipos de entidad auditados.
const (
	EntityCategory = "category"
)

// AuditEntry es una fila inmutable del registro de auditoría (solo inserción).
type AuditEntry struct {
	ID          string
	CompanyID   string
	Action      string // created, updated, deleted
	EntityType  string
	EntityID    string
	Description string
	Actor       string // user_id que ejecutó la operación
	OccurredAt  time.Time
}

// AuditFilter restringe el listado de auditoría. CompanyID es obligatorio.
type AuditFilter struct {
	Action     string
	EntityType string
	EntityID   string
	Limit      int // por defecto 50, máximo 200
	Offset     int
}
