package category

// Mutation es el conjunto cerrado de mutaciones sobre categorías.
// Solo los tipos de este paquete la implementan.
type Mutation interface {
	kind() string
}

// CreateCategory crea una categoría en la empresa activa.
type CreateCategory struct {
	Name        string
	Description string
	ParentID    string // vacío = raíz
}

// EditCategory reemplaza nombre, descripción y padre de una categoría existente.
type EditCategory struct {
	ID          string
	Name        string
	Description string
	ParentID    string
}

// DeleteCategory elimina una categoría sin productos ni subcategorías.
type DeleteCategory struct {
	ID string
}

func (CreateCategory) kind() string { return "create" }
func (EditCategory) kind() string   { return "edit" }
func (DeleteCategory) kind() string { return "delete" }

// Result es el resultado de una mutación exitosa.
type Result struct {
	ID      string
	Message string
}
