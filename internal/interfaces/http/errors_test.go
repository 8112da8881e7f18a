package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	apphttp "github.com/jhoicas/inventario-core/internal/interfaces/http"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

func writeErr(t *testing.T, w apphttp.ErrorWriter, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return w.Write(c, err) })
	resp, rerr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, rerr)
	return resp.StatusCode, decode[dto.ErrorResponse](t, resp)
}

func TestErrorWriter_Mapeo(t *testing.T) {
	w := apphttp.ErrorWriter{Log: logger.Nop()}
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", domain.NewValidationError("name", "es requerido"), http.StatusBadRequest, "VALIDATION"},
		{"conflicto", domain.NewConflictError(3, "tiene %d productos"), http.StatusConflict, "CONFLICT"},
		{"duplicado", fmt.Errorf("crear: %w", domain.ErrDuplicate), http.StatusConflict, "CONFLICT"},
		{"no encontrado", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"sin sesión", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"interno", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := writeErr(t, w, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestErrorWriter_ConflictoUsaMotivo(t *testing.T) {
	_, body := writeErr(t, apphttp.ErrorWriter{}, domain.NewConflictError(2, "la categoría tiene %d subcategorías"))
	assert.Equal(t, "la categoría tiene 2 subcategorías", body.Message)
}

func TestErrorWriter_DetalleSoloEnDebug(t *testing.T) {
	cause := fmt.Errorf("%w: %w", domain.ErrAuditWrite, errors.New("disk full"))

	_, body := writeErr(t, apphttp.ErrorWriter{Log: logger.Nop()}, cause)
	assert.NotContains(t, body.Message, "disk full")

	_, body = writeErr(t, apphttp.ErrorWriter{Debug: true, Log: logger.Nop()}, cause)
	assert.Contains(t, body.Message, "disk full")
}
