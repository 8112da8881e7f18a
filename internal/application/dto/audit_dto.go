package dto

import "time"

// AuditListRequest filtros del listado de auditoría.
type AuditListRequest struct {
	Action     string `query:"action" validate:"omitempty,oneof=created updated deleted"`
	EntityType string `query:"entity_type" validate:"max=50"`
	EntityID   string `query:"entity_id" validate:"max=100"`
	PageRequest
}

// AuditEntryResponse salida de una entrada de auditoría.
type AuditEntryResponse struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Description string    `json:"description"`
	Actor       string    `json:"actor,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AuditListResponse lista paginada de auditoría.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
