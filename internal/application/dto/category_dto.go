package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
}

// UpdateCategoryRequest entrada para editar una categoría. Reemplaza todos los campos.
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	ParentID    *string   `json:"parent_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListItem fila del listado jerárquico.
type CategoryListItem struct {
	CategoryResponse
	ParentName  string `json:"parent_name,omitempty"`
	ItemCount   int    `json:"item_count"`
	SubcatCount int    `json:"subcat_count"`
	CanDelete   bool   `json:"can_delete"`
}

// CategoryListResponse listado completo de categorías de la empresa.
type CategoryListResponse struct {
	Items []CategoryListItem `json:"items"`
}

// ParentCandidatesResponse categorías raíz ofrecidas como padre.
type ParentCandidatesResponse struct {
	Items []CategoryResponse `json:"items"`
}

// MutationResponse resultado de una mutación exitosa.
type MutationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
