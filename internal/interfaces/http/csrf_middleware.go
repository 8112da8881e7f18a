package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/pkg/csrf"
)

// CSRFMiddleware exige en POST/PUT/PATCH/DELETE el token anti-CSRF de la sesión en la cabecera
// indicada. Va después de AuthMiddleware y antes de cualquier acceso a datos; el rechazo no
// explica el motivo.
func CSRFMiddleware(m *csrf.Manager, header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if err := m.Verify(GetSessionID(c), c.Get(header)); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solicitud no autorizada"})
		}
		return c.Next()
	}
}

// CSRFHandler entrega el token anti-CSRF de la sesión activa.
type CSRFHandler struct {
	m *csrf.Manager
}

// NewCSRFHandler construye el handler.
func NewCSRFHandler(m *csrf.Manager) *CSRFHandler {
	return &CSRFHandler{m: m}
}

// Token godoc
// @Summary      Obtener token anti-CSRF de la sesión
// @Tags         security
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/csrf [get]
func (h *CSRFHandler) Token(c *fiber.Ctx) error {
	tok, err := h.m.Issue(GetSessionID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	return c.JSON(fiber.Map{"csrf_token": tok})
}
