package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/audit"
	"github.com/jhoicas/inventario-core/internal/application/category"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/tenant"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-core/pkg/config"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// Estas pruebas necesitan una base PostgreSQL desechable en TEST_DATABASE_URL.

type dbFixture struct {
	mgr       *postgres.Manager
	h         *postgres.Handle
	companies *postgres.CompanyRepo
	cats      *postgres.CategoryRepo
	items     *postgres.ItemRepo
	audits    *postgres.AuditRepo
	uc        *category.UseCase
}

func newDBFixture(t *testing.T) *dbFixture {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	log := logger.Nop()
	mgr := postgres.NewManager(config.DBConfig{DatabaseURL: url, MaxConns: 4}, log)
	t.Cleanup(mgr.Close)

	_, err := postgres.Migrate(ctx, mgr)
	require.NoError(t, err)
	h, err := mgr.Handle(ctx)
	require.NoError(t, err)

	cats := postgres.NewCategoryRepository(h)
	return &dbFixture{
		mgr:       mgr,
		h:         h,
		companies: postgres.NewCompanyRepository(h),
		cats:      cats,
		items:     postgres.NewItemRepository(h),
		audits:    postgres.NewAuditRepository(h),
		uc:        category.NewUseCase(postgres.NewTxRunner(mgr, log), cats, audit.NewRecorder(), nil, log),
	}
}

func (f *dbFixture) company(t *testing.T, name string) tenant.Context {
	t.Helper()
	id, err := f.companies.Create(context.Background(), &entity.Company{Name: name, Status: entity.CompanyActive})
	require.NoError(t, err)
	return tenant.Context{CompanyID: id, UserID: "it-user", Role: entity.RoleAdmin, SessionID: "it-session"}
}

func TestMigrate_Idempotente(t *testing.T) {
	f := newDBFixture(t)

	applied, err := postgres.Migrate(context.Background(), f.mgr)

	require.NoError(t, err)
	assert.Empty(t, applied, "una segunda ejecución no aplica nada")
}

func TestCategoryRepo_AislamientoPorEmpresa(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()
	a := f.company(t, "IT Empresa A")
	b := f.company(t, "IT Empresa B")

	id, err := f.cats.Create(ctx, &entity.Category{CompanyID: a.CompanyID, Name: "Elektro"})
	require.NoError(t, err)

	got, err := f.cats.GetByID(ctx, b.CompanyID, id)
	require.NoError(t, err)
	assert.Nil(t, got, "una empresa no ve categorías de otra")

	n, err := f.cats.Delete(ctx, b.CompanyID, id)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = f.cats.Create(ctx, &entity.Category{CompanyID: b.CompanyID, Name: "Intrusa", ParentID: id})
	assert.ErrorIs(t, err, domain.ErrConflict, "la llave compuesta rechaza un padre de otra empresa")
}

func TestUseCase_FlujoCompletoConAuditoria(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()
	a := f.company(t, "IT Empresa D")

	root, err := f.uc.Create(ctx, a, dto.CreateCategoryRequest{Name: "Werkzeug"})
	require.NoError(t, err)
	child, err := f.uc.Create(ctx, a, dto.CreateCategoryRequest{Name: "Hammer", ParentID: root.ID})
	require.NoError(t, err)
	_, err = f.items.Create(ctx, &entity.Item{
		CompanyID: a.CompanyID, CategoryID: child.ID, Name: "Martillo", IsActive: true,
		MinimumStock: decimal.RequireFromString("2.5"),
	})
	require.NoError(t, err)

	_, err = f.uc.Delete(ctx, a, child.ID)
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Count)

	list, err := f.cats.ListWithStats(ctx, a.CompanyID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Werkzeug", list[0].Name)
	assert.Equal(t, "Hammer", list[1].Name)
	assert.Equal(t, "Werkzeug", list[1].ParentName)
	assert.Equal(t, 1, list[1].ItemCount)

	entries, total, err := f.audits.List(ctx, a.CompanyID, entity.AuditFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "la eliminación rechazada no se audita")
	for _, e := range entries {
		assert.Equal(t, entity.AuditCreated, e.Action)
	}
}

func TestAuditLog_Inmutable(t *testing.T) {
	f := newDBFixture(t)
	ctx := context.Background()
	a := f.company(t, "IT Empresa E")
	_, err := f.uc.Create(ctx, a, dto.CreateCategoryRequest{Name: "Garten"})
	require.NoError(t, err)

	_, err = f.h.Execute(ctx, `UPDATE audit_log SET description = 'x' WHERE company_id = $1`, a.CompanyID)

	assert.Error(t, err)
}
