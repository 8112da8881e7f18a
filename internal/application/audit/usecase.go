package audit

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/tenant"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// UseCase consulta el registro de auditoría de la empresa activa (solo lectura).
type UseCase struct {
	repo repository.AuditRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AuditRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve las entradas de la empresa activa, más recientes primero.
func (uc *UseCase) List(ctx context.Context, tc tenant.Context, in dto.AuditListRequest) (*dto.AuditListResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(in.Offset, 0)

	list, total, err := uc.repo.List(ctx, tc.CurrentCompanyID(), entity.AuditFilter{
		Action:     in.Action,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.AuditEntryResponse{
			ID:          e.ID,
			Action:      e.Action,
			EntityType:  e.EntityType,
			EntityID:    e.EntityID,
			Description: e.Description,
			Actor:       e.Actor,
			OccurredAt:  e.OccurredAt,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}
