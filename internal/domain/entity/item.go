package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item es un producto del inventario referenciado por categoría. El núcleo solo lo
// necesita para contar dependientes antes de eliminar una categoría.
type Item struct {
	ID           string
	CompanyID    string
	CategoryID   string // vacío si no tiene categoría
	Name         string
	MinimumStock decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
}
