package repository

import (
	"context"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todo método recibe companyID y lo incluye en el predicado de la consulta.
type CategoryRepository interface {
	// Create inserta la categoría y devuelve el id generado.
	Create(ctx context.Context, category *entity.Category) (string, error)
	GetByID(ctx context.Context, companyID, id string) (*entity.Category, error)
	// LockByID obtiene la categoría bloqueando la fila hasta el fin de la transacción.
	LockByID(ctx context.Context, companyID, id string) (*entity.Category, error)
	// Update devuelve la cantidad de filas afectadas (cero si el id no pertenece a la empresa).
	Update(ctx context.Context, category *entity.Category) (int64, error)
	Delete(ctx context.Context, companyID, id string) (int64, error)
	CountChildren(ctx context.Context, companyID, id string) (int, error)
	ListWithStats(ctx context.Context, companyID string) ([]*entity.CategoryListing, error)
	ListTopLevel(ctx context.Context, companyID string) ([]*entity.Category, error)
}
