package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del registro de auditoría sobre PostgreSQL. Solo INSERT y SELECT.
type AuditRepo struct {
	h *Handle
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(h *Handle) *AuditRepo {
	return &AuditRepo{h: h}
}

// Append inserta la entrada y completa ID y OccurredAt con los valores generados por la base.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	err := r.h.FetchOne(ctx, `
		INSERT INTO audit_log (company_id, action, entity_type, entity_id, description, actor)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, occurred_at`,
		e.CompanyID, e.Action, e.EntityType, e.EntityID, e.Description, nullable(e.Actor),
	).Scan(&e.ID, &e.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List devuelve las entradas de la empresa que cumplen el filtro, más recientes primero, y el total.
func (r *AuditRepo) List(ctx context.Context, companyID string, f entity.AuditFilter) ([]*entity.AuditEntry, int, error) {
	conds := []string{"company_id = $1"}
	args := []any{companyID}
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("action", f.Action)
	add("entity_type", f.EntityType)
	add("entity_id", f.EntityID)
	where := strings.Join(conds, " AND ")

	// WHERE armado solo con placeholders; los valores viajan en args.
	var total int
	if err := r.h.FetchOne(ctx, "SELECT COUNT(*) FROM audit_log WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := r.h.FetchAll(ctx, fmt.Sprintf(`
		SELECT id::text, company_id::text, action, entity_type, entity_id, description, COALESCE(actor, ''), occurred_at
		FROM audit_log WHERE %s
		ORDER BY occurred_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.AuditEntry, 0)
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Action, &e.EntityType, &e.EntityID,
			&e.Description, &e.Actor, &e.OccurredAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
