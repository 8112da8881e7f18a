package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/audit"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/tenant"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/testutil/memstore"
)

func TestRecord_AgregaEntradaConActorYEmpresa(t *testing.T) {
	store := memstore.New()
	tc := tenant.Context{CompanyID: "c1", UserID: "u1", SessionID: "s1"}

	e, err := audit.NewRecorder().Record(context.Background(), store.Audit(), tc,
		entity.AuditCreated, entity.EntityCategory, "cat-1", "Categoría creada: X")
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.OccurredAt.IsZero())
	entries := store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "c1", entries[0].CompanyID)
	assert.Equal(t, "u1", entries[0].Actor)
}

func TestRecord_ErrorDeEscrituraNoSeOculta(t *testing.T) {
	store := memstore.New()
	store.AuditErr = errors.New("timeout")
	tc := tenant.Context{CompanyID: "c1", UserID: "u1", SessionID: "s1"}

	_, err := audit.NewRecorder().Record(context.Background(), store.Audit(), tc,
		entity.AuditDeleted, entity.EntityCategory, "cat-1", "")
	assert.ErrorIs(t, err, domain.ErrAuditWrite)
}

func TestRecord_AccionDesconocida(t *testing.T) {
	store := memstore.New()
	tc := tenant.Context{CompanyID: "c1", UserID: "u1", SessionID: "s1"}

	_, err := audit.NewRecorder().Record(context.Background(), store.Audit(), tc, "purged", entity.EntityCategory, "cat-1", "")
	assert.ErrorIs(t, err, domain.ErrAuditWrite)
	assert.Empty(t, store.AuditEntries())
}

func TestList_FiltraPorEmpresaYPagina(t *testing.T) {
	store := memstore.New()
	rec := audit.NewRecorder()
	ctx := context.Background()
	a := tenant.Context{CompanyID: "c1", UserID: "u1", SessionID: "s1"}
	b := tenant.Context{CompanyID: "c2", UserID: "u2", SessionID: "s2"}

	for _, id := range []string{"x1", "x2", "x3"} {
		_, err := rec.Record(ctx, store.Audit(), a, entity.AuditCreated, entity.EntityCategory, id, "")
		require.NoError(t, err)
	}
	_, err := rec.Record(ctx, store.Audit(), a, entity.AuditDeleted, entity.EntityCategory, "x1", "")
	require.NoError(t, err)
	_, err = rec.Record(ctx, store.Audit(), b, entity.AuditCreated, entity.EntityCategory, "y1", "")
	require.NoError(t, err)

	uc := audit.NewUseCase(store.Audit())

	out, err := uc.List(ctx, a, dto.AuditListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Page.Total)
	assert.Equal(t, 50, out.Page.Limit)
	assert.Equal(t, entity.AuditDeleted, out.Items[0].Action, "más recientes primero")

	out, err = uc.List(ctx, a, dto.AuditListRequest{Action: entity.AuditCreated, PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Page.Total)
	assert.Len(t, out.Items, 2)

	out, err = uc.List(ctx, b, dto.AuditListRequest{EntityID: "x1"})
	require.NoError(t, err)
	assert.Zero(t, out.Page.Total, "otra empresa no ve entradas ajenas")
}

func TestList_LimiteMaximo(t *testing.T) {
	uc := audit.NewUseCase(memstore.New().Audit())
	out, err := uc.List(context.Background(), tenant.Context{CompanyID: "c1", UserID: "u1", SessionID: "s1"},
		dto.AuditListRequest{PageRequest: dto.PageRequest{Limit: 1000, Offset: -5}})
	require.NoError(t, err)
	assert.Equal(t, 200, out.Page.Limit)
	assert.Equal(t, 0, out.Page.Offset)
}
