package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	h *Handle
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(h *Handle) *CompanyRepo {
	return &CompanyRepo{h: h}
}

// Create persiste una nueva empresa y devuelve su id.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) (string, error) {
	status := c.Status
	if status == "" {
		status = entity.CompanyActive
	}
	id, err := r.h.Insert(ctx,
		`INSERT INTO companies (name, status) VALUES ($1, $2) RETURNING id::text`, c.Name, status,
	)
	if err != nil {
		return "", mapWriteError("insert company", err)
	}
	return id, nil
}

// GetByID obtiene una empresa por ID. Devuelve nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var c entity.Company
	err := r.h.FetchOne(ctx,
		`SELECT id::text, name, status, created_at FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Status, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		if pgCode(err) == codeInvalidText {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
