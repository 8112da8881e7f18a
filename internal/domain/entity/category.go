package entity

import "time"

// Category representa una categoría de productos. Jerarquía de un solo nivel:
// ParentID vacío indica categoría raíz; solo las raíces pueden ser padres.
type Category struct {
	ID          string
	CompanyID   string
	ParentID    string // vacío si es raíz
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTopLevel informa si la categoría no tiene padre.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == ""
}

// CategoryListing es una fila del listado: la categoría con el nombre de su padre
// y los conteos de dependientes.
type CategoryListing struct {
	Category
	ParentName  string
	ItemCount   int
	SubcatCount int
}

// CanDelete informa si no hay productos ni subcategorías que dependan de la categoría.
func (l *CategoryListing) CanDelete() bool {
	return l.ItemCount == 0 && l.SubcatCount == 0
}
