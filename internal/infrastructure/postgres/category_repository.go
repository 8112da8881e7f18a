package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `c.id::text, c.company_id::text, COALESCE(c.parent_id::text, ''), c.name,
		COALESCE(c.description, ''), c.created_at, c.updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
// Toda consulta filtra por company_id.
type CategoryRepo struct {
	h *Handle
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(h *Handle) *CategoryRepo {
	return &CategoryRepo{h: h}
}

// Create inserta la categoría con la empresa del llamador y devuelve el id generado.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) (string, error) {
	id, err := r.h.Insert(ctx, `
		INSERT INTO categories (company_id, parent_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text`,
		c.CompanyID, nullable(c.ParentID), c.Name, nullable(c.Description),
	)
	if err != nil {
		return "", mapWriteError("insert category", err)
	}
	return id, nil
}

// GetByID obtiene una categoría de la empresa. Devuelve nil si no existe para esa empresa.
func (r *CategoryRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Category, error) {
	return r.get(ctx, `SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1 AND c.company_id = $2`, companyID, id)
}

// LockByID igual que GetByID pero con SELECT ... FOR UPDATE: la fila queda bloqueada hasta el
// fin de la transacción, y los INSERT de productos o subcategorías que la referencian esperan.
func (r *CategoryRepo) LockByID(ctx context.Context, companyID, id string) (*entity.Category, error) {
	return r.get(ctx, `SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1 AND c.company_id = $2 FOR UPDATE`, companyID, id)
}

func (r *CategoryRepo) get(ctx context.Context, query, companyID, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.h.FetchOne(ctx, query, id, companyID).Scan(
		&c.ID, &c.CompanyID, &c.ParentID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre, descripción y padre. El predicado id AND company_id hace que un id de
// otra empresa afecte cero filas.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (int64, error) {
	n, err := r.h.Execute(ctx, `
		UPDATE categories SET name = $3, description = $4, parent_id = $5, updated_at = now()
		WHERE id = $1 AND company_id = $2`,
		c.ID, c.CompanyID, c.Name, nullable(c.Description), nullable(c.ParentID),
	)
	if err != nil {
		return 0, mapWriteError("update category", err)
	}
	return n, nil
}

// Delete elimina la categoría de la empresa.
func (r *CategoryRepo) Delete(ctx context.Context, companyID, id string) (int64, error) {
	n, err := r.h.Execute(ctx, `DELETE FROM categories WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return 0, mapWriteError("delete category", err)
	}
	return n, nil
}

// CountChildren cuenta las subcategorías directas.
func (r *CategoryRepo) CountChildren(ctx context.Context, companyID, id string) (int, error) {
	var n int
	err := r.h.FetchOne(ctx,
		`SELECT COUNT(*) FROM categories WHERE parent_id = $1 AND company_id = $2`, id, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subcategories: %w", err)
	}
	return n, nil
}

// ListWithStats lista las categorías de la empresa con el nombre del padre y los conteos de
// dependientes. Cada raíz va seguida inmediatamente de sus hijas; las raíces se ordenan por nombre.
func (r *CategoryRepo) ListWithStats(ctx context.Context, companyID string) ([]*entity.CategoryListing, error) {
	rows, err := r.h.FetchAll(ctx, `
		SELECT `+categoryColumns+`, COALESCE(p.name, ''),
			(SELECT COUNT(*) FROM items i WHERE i.category_id = c.id AND i.company_id = c.company_id),
			(SELECT COUNT(*) FROM categories s WHERE s.parent_id = c.id AND s.company_id = c.company_id)
		FROM categories c
		LEFT JOIN categories p ON p.id = c.parent_id AND p.company_id = c.company_id
		WHERE c.company_id = $1
		ORDER BY COALESCE(p.name, c.name), COALESCE(c.parent_id, c.id), c.parent_id NULLS FIRST, c.name`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.CategoryListing
	for rows.Next() {
		var l entity.CategoryListing
		if err := rows.Scan(
			&l.ID, &l.CompanyID, &l.ParentID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt,
			&l.ParentName, &l.ItemCount, &l.SubcatCount,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListTopLevel lista las categorías raíz (candidatas a padre) por nombre.
func (r *CategoryRepo) ListTopLevel(ctx context.Context, companyID string) ([]*entity.Category, error) {
	rows, err := r.h.FetchAll(ctx,
		`SELECT `+categoryColumns+` FROM categories c WHERE c.company_id = $1 AND c.parent_id IS NULL ORDER BY c.name`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list top-level categories: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.CompanyID, &c.ParentID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
		return &c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return list, nil
}

// mapWriteError traduce violaciones de constraints a errores de dominio.
// La llave foránea compuesta (parent_id, company_id) rechaza padres de otra empresa.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case pgCode(err) == codeInvalidText:
		return domain.NewValidationError("id", "identificador inválido")
	}
	return fmt.Errorf("%s: %w", op, err)
}
