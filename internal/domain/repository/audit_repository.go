package repository

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// AuditRepository define el puerto del registro de auditoría. Solo inserción y lectura:
// no existe operación para modificar o borrar entradas.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, companyID string, filter entity.AuditFilter) ([]*entity.AuditEntry, int, error)
}
