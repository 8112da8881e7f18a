package entity

import "time"

// Estados de una empresa.
const (
	CompanyActive    = "active"
	CompanySuspended = "suspended"
	CompanyInactive  = "inactive"
)

// Company representa una organización/tenant del sistema. Todo registro con ámbito
// pertenece exactamente a una empresa.
type Company struct {
	ID        string
	Name      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
}

// IsActive informa si la empresa puede operar.
func (c *Company) IsActive() bool {
	return c.Status == CompanyActive
}
