package category

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte completa, incluida la entrada de auditoría.
type TxRunner interface {
	RunCategory(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		items repository.ItemRepository,
		audit repository.AuditRepository,
	) error) error
}
