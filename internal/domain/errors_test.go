package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-core/internal/domain"
)

func TestValidationError_UnwrapsSentinel(t *testing.T) {
	err := fmt.Errorf("crear categoría: %w", domain.NewValidationError("name", "es requerido"))

	assert.True(t, errors.Is(err, domain.ErrValidation))
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "name: es requerido", ve.Error())
}

func TestConflictError_IncluyeConteo(t *testing.T) {
	err := domain.NewConflictError(3, "la categoría tiene %d productos asociados")

	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 3, err.Count)
	assert.Contains(t, err.Error(), "3")
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, domain.IsRecoverable(domain.NewValidationError("", "x")))
	assert.True(t, domain.IsRecoverable(domain.ErrNotFound))
	assert.True(t, domain.IsRecoverable(domain.ErrUnauthorized))
	assert.False(t, domain.IsRecoverable(domain.ErrConnection))
	assert.False(t, domain.IsRecoverable(fmt.Errorf("tx: %w", domain.ErrAuditWrite)))
	assert.False(t, domain.IsRecoverable(errors.New("boom")))
}
