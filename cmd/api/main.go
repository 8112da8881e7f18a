package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/inventario-core/internal/application/audit"
	"github.com/jhoicas/inventario-core/internal/application/category"
	"github.com/jhoicas/inventario-core/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-core/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-core/internal/interfaces/http"
	"github.com/jhoicas/inventario-core/pkg/config"
	"github.com/jhoicas/inventario-core/pkg/csrf"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("debug", cfg.App.Debug).
		Msg("iniciando aplicación")

	ctx := context.Background()
	mgr := postgres.NewManager(cfg.DB, log)
	defer mgr.Close()
	h, err := mgr.Handle(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}

	companyRepo := postgres.NewCompanyRepository(h)
	categoryRepo := postgres.NewCategoryRepository(h)
	auditRepo := postgres.NewAuditRepository(h)
	txRunner := postgres.NewTxRunner(mgr, log)

	mutationMetrics := metrics.New("inventario")
	categoryUC := category.NewUseCase(txRunner, categoryRepo, audit.NewRecorder(), mutationMetrics, log)
	auditUC := audit.NewUseCase(auditRepo)

	csrfMgr, err := csrf.New(cfg.JWT.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar CSRF")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Core API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := mgr.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(mutationMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		AuditUC:    auditUC,
		Companies:  companyRepo,
		CSRF:       csrfMgr,
		CSRFHeader: cfg.CSRF.Header,
		JWTSecret:  cfg.JWT.Secret,
		Debug:      cfg.App.Debug,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
