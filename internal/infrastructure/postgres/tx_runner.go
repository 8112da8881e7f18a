package postgres

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/application/category"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// Ensure TxRunner implements category.TxRunner.
var _ category.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	mgr *Manager
	log *logger.Logger
}

// NewTxRunner construye el runner con el manager de conexión.
func NewTxRunner(mgr *Manager, log *logger.Logger) *TxRunner {
	return &TxRunner{mgr: mgr, log: log.Component("tx")}
}

// RunCategory inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Cualquier error de fn deja la base en el estado previo a la transacción.
func (r *TxRunner) RunCategory(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	audit repository.AuditRepository,
) error) error {
	tx, err := r.mgr.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Error().Err(rbErr).Msg("rollback")
		}
	}()

	h := tx.Handle()
	if err := fn(NewCategoryRepository(h), NewItemRepository(h), NewAuditRepository(h)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
