// Package audit registra y consulta el rastro de auditoría de las mutaciones.
package audit

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/application/tenant"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// Recorder agrega una entrada de auditoría por mutación. Se invoca dentro de la misma
// transacción que la mutación: si la escritura falla, el error envuelve domain.ErrAuditWrite y
// la transacción se revierte.
type Recorder struct{}

// NewRecorder construye el recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record agrega la entrada con actor = usuario de la sesión y empresa = empresa activa.
func (r *Recorder) Record(
	ctx context.Context,
	repo repository.AuditRepository,
	tc tenant.Context,
	action, entityType, entityID, description string,
) (*entity.AuditEntry, error) {
	switch action {
	case entity.AuditCreated, entity.AuditUpdated, entity.AuditDeleted:
	default:
		return nil, fmt.Errorf("%w: acción desconocida %q", domain.ErrAuditWrite, action)
	}
	if entityID == "" {
		return nil, fmt.Errorf("%w: entity_id vacío", domain.ErrAuditWrite)
	}
	e := &entity.AuditEntry{
		CompanyID:   tc.CurrentCompanyID(),
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Actor:       tc.UserID,
	}
	if err := repo.Append(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuditWrite, err)
	}
	return e, nil
}
