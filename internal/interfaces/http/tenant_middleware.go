package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/tenant"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// TenantMiddleware revalida en cada petición que la empresa de la sesión exista y esté activa.
// El resultado no se guarda entre peticiones. Si la empresa es válida, el contexto de empresa
// queda en c.UserContext() y Tenant(c) lo toma de ahí.
//
// Comportamiento:
//   - 401 Unauthorized → sin company_id o empresa inexistente.
//   - 403 Forbidden → empresa suspendida o inactiva.
//   - 503 Service Unavailable → fallo al consultar la DB.
func TenantMiddleware(companies repository.CompanyRepository, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
		}
		company, err := companies.GetByID(c.UserContext(), companyID)
		if err != nil {
			log.Error().Err(err).Str("company_id", companyID).Msg("revalidar empresa")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TENANT_CHECK_FAILED", Message: "no se pudo verificar la empresa, intente más tarde"})
		}
		if company == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "empresa no encontrada"})
		}
		if !company.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "COMPANY_INACTIVE", Message: "la empresa no está activa"})
		}
		c.SetUserContext(tenant.NewContext(c.UserContext(), tenantFromLocals(c)))
		return c.Next()
	}
}
