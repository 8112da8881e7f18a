package repository

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item, limitado a lo que
// necesita la guarda de integridad de categorías.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) (string, error)
	CountByCategory(ctx context.Context, companyID, categoryID string) (int, error)
}
