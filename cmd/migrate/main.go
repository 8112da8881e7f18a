// migrate aplica las migraciones SQL embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate [-seed]
// Con -seed crea además una empresa de demostración con categorías y productos,
// e imprime su id para usarlo con cmd/devtoken.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-core/pkg/config"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "crear datos de demostración")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mgr := postgres.NewManager(cfg.DB, log)
	defer mgr.Close()

	applied, err := postgres.Migrate(ctx, mgr)
	if err != nil {
		log.Fatal().Err(err).Strs("applied", applied).Msg("migrar")
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")

	if !*seed {
		return
	}
	companyID, err := seedDemo(ctx, mgr)
	if err != nil {
		log.Fatal().Err(err).Msg("datos de demostración")
	}
	fmt.Printf("company_id=%s\n", companyID)
}

// seedDemo crea una empresa con dos categorías raíz, una subcategoría y productos.
func seedDemo(ctx context.Context, mgr *postgres.Manager) (string, error) {
	tx, err := mgr.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	h := tx.Handle()
	companies := postgres.NewCompanyRepository(h)
	categories := postgres.NewCategoryRepository(h)
	items := postgres.NewItemRepository(h)

	companyID, err := companies.Create(ctx, &entity.Company{Name: "Empresa Demo", Status: entity.CompanyActive})
	if err != nil {
		return "", fmt.Errorf("empresa: %w", err)
	}
	elektro, err := categories.Create(ctx, &entity.Category{CompanyID: companyID, Name: "Elektro", Description: "Material eléctrico"})
	if err != nil {
		return "", fmt.Errorf("categoría: %w", err)
	}
	kabel, err := categories.Create(ctx, &entity.Category{CompanyID: companyID, ParentID: elektro, Name: "Kabel"})
	if err != nil {
		return "", fmt.Errorf("subcategoría: %w", err)
	}
	if _, err := categories.Create(ctx, &entity.Category{CompanyID: companyID, Name: "Werkzeug"}); err != nil {
		return "", fmt.Errorf("categoría: %w", err)
	}

	demo := []entity.Item{
		{Name: "Cable NYM 3x1.5", CategoryID: kabel, MinimumStock: decimal.RequireFromString("100.5")},
		{Name: "Cable NYM 5x2.5", CategoryID: kabel, MinimumStock: decimal.NewFromInt(50)},
		{Name: "Enchufe Schuko", CategoryID: elektro, MinimumStock: decimal.NewFromInt(20)},
	}
	for i := range demo {
		demo[i].CompanyID = companyID
		demo[i].IsActive = true
		if _, err := items.Create(ctx, &demo[i]); err != nil {
			return "", fmt.Errorf("producto %s: %w", demo[i].Name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return companyID, nil
}
