package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-core/internal/application/audit"
	"github.com/jhoicas/inventario-core/internal/application/dto"
)

// AuditHandler expone el registro de auditoría de la empresa (solo lectura).
type AuditHandler struct {
	uc   *audit.UseCase
	errs ErrorWriter
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase, errs ErrorWriter) *AuditHandler {
	return &AuditHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action       query  string  false  "created | updated | deleted"
// @Param        entity_type  query  string  false  "Tipo de entidad"
// @Param        entity_id    query  string  false  "ID de la entidad"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	in := dto.AuditListRequest{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 0),
			Offset: c.QueryInt("offset", 0),
		},
	}
	if done, err := validateBody(c, &in); done {
		return err
	}
	out, err := h.uc.List(c.UserContext(), Tenant(c), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
