package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-core/internal/application/audit"
	"github.com/jhoicas/inventario-core/internal/application/category"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
	"github.com/jhoicas/inventario-core/pkg/csrf"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *category.UseCase
	AuditUC    *audit.UseCase
	Companies  repository.CompanyRepository
	CSRF       *csrf.Manager
	CSRFHeader string
	JWTSecret  string
	Debug      bool
	Log        *logger.Logger
}

// Router registra las rutas de la API.
//
// Orden de middlewares en /api: sesión JWT, token anti-CSRF y revalidación de empresa.
// Los dos primeros no tocan la base de datos.
func Router(app *fiber.App, deps RouterDeps) {
	errs := ErrorWriter{Debug: deps.Debug, Log: deps.Log.Component("http")}
	header := deps.CSRFHeader
	if header == "" {
		header = "X-CSRF-Token"
	}

	protected := app.Group("/api",
		AuthMiddleware(deps.JWTSecret),
		CSRFMiddleware(deps.CSRF, header),
		TenantMiddleware(deps.Companies, deps.Log.Component("tenant")),
	)

	csrfHandler := NewCSRFHandler(deps.CSRF)
	protected.Get("/csrf", csrfHandler.Token)

	mutators := RequireRole(entity.MutatingRoles...)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, errs)
	categories.Get("/", categoryHandler.List)
	categories.Get("/parents", categoryHandler.Parents)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", mutators, categoryHandler.Create)
	categories.Put("/:id", mutators, categoryHandler.Update)
	categories.Delete("/:id", mutators, categoryHandler.Delete)

	auditHandler := NewAuditHandler(deps.AuditUC, errs)
	protected.Get("/audit", auditHandler.List)
}
