package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	h *Handle
}

// NewItemRepository construye el adaptador. Pasar el handle del pool o de la tx.
func NewItemRepository(h *Handle) *ItemRepo {
	return &ItemRepo{h: h}
}

// Create persiste un producto y devuelve el id generado.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) (string, error) {
	id, err := r.h.Insert(ctx, `
		INSERT INTO items (company_id, category_id, name, minimum_stock, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text`,
		item.CompanyID, nullable(item.CategoryID), item.Name, item.MinimumStock, item.IsActive,
	)
	if err != nil {
		return "", mapWriteError("insert item", err)
	}
	return id, nil
}

// CountByCategory cuenta los productos (activos o no) asignados a la categoría.
func (r *ItemRepo) CountByCategory(ctx context.Context, companyID, categoryID string) (int, error) {
	var n int
	err := r.h.FetchOne(ctx,
		`SELECT COUNT(*) FROM items WHERE category_id = $1 AND company_id = $2`, categoryID, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
