package category

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 1000
)

// normalizeText aplica NFC y recorta espacios, de modo que "Élektro" escrito con o sin
// carácter combinado se guarda igual.
func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func validateName(raw string) (string, error) {
	name := normalizeText(raw)
	if name == "" {
		return "", domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", domain.NewValidationError("name", "el nombre supera 100 caracteres")
	}
	return name, nil
}

func validateDescription(raw string) (string, error) {
	d := normalizeText(raw)
	if utf8.RuneCountInString(d) > maxDescriptionLen {
		return "", domain.NewValidationError("description", "la descripción supera 1000 caracteres")
	}
	return d, nil
}

func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewValidationError(field, "identificador inválido")
	}
	return nil
}

// checkParent verifica que el padre exista en la empresa y sea raíz. Bloquea la fila del padre
// para que no se convierta en hija mientras dura la transacción.
func checkParent(ctx context.Context, repo repository.CategoryRepository, companyID, parentID, selfID string) error {
	if parentID == "" {
		return nil
	}
	if err := validateID("parent_id", parentID); err != nil {
		return err
	}
	if parentID == selfID {
		return domain.NewValidationError("parent_id", "una categoría no puede ser su propio padre")
	}
	parent, err := repo.LockByID(ctx, companyID, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return domain.NewValidationError("parent_id", "categoría padre no encontrada")
	}
	if !parent.IsTopLevel() {
		return domain.NewValidationError("parent_id", "solo se permite un nivel de subcategorías")
	}
	return nil
}
