package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/tenant"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	apphttp "github.com/jhoicas/inventario-core/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-core/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inventario-core-test"
	testExpMin    = 60
)

// mutationApp monta AuthMiddleware y RequireRole(entity.MutatingRoles...) como en las rutas de
// escritura; el handler devuelve el contexto de empresa que ve la petición.
func mutationApp() *fiber.App {
	app := fiber.New()
	app.Post("/mutate",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.MutatingRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(apphttp.Tenant(c))
		},
	)
	return app
}

func bearer(t *testing.T, userID, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func post(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole sobre los roles que mutan
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_RolesQueMutanPasan(t *testing.T) {
	app := mutationApp()
	for _, role := range entity.MutatingRoles {
		t.Run(role, func(t *testing.T) {
			resp := post(t, app, bearer(t, testUserID, testCompanyID, role))
			require.Equal(t, http.StatusOK, resp.StatusCode)

			tc := decode[tenant.Context](t, resp)
			assert.Equal(t, role, tc.Role)
		})
	}
}

func TestRequireRole_RolesSinPermisoDeEscritura(t *testing.T) {
	app := mutationApp()
	for _, role := range []string{entity.RoleVendedor, "auditor", "ADMIN"} {
		t.Run(role, func(t *testing.T) {
			resp := post(t, app, bearer(t, testUserID, testCompanyID, role))
			require.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	resp := post(t, mutationApp(), bearer(t, testUserID, testCompanyID, ""))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TenantDesdeLocals(t *testing.T) {
	header := bearer(t, testUserID, testCompanyID, entity.RoleBodeguero)
	parsed, err := pkgjwt.Parse(testJWTSecret, header[len("Bearer "):])
	require.NoError(t, err)

	resp := post(t, mutationApp(), header)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tc := decode[tenant.Context](t, resp)
	assert.Equal(t, tenant.Context{
		CompanyID: testCompanyID,
		UserID:    testUserID,
		Role:      entity.RoleBodeguero,
		SessionID: parsed.ID,
	}, tc)
	assert.NoError(t, tc.Validate())
}

func TestAuthMiddleware_TokenSinEmpresaOUsuario(t *testing.T) {
	cases := []struct {
		name, userID, companyID string
	}{
		{"sin empresa", testUserID, ""},
		{"sin usuario", "", testCompanyID},
		{"sin ambos", "", ""},
	}
	app := mutationApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, app, bearer(t, tc.userID, tc.companyID, entity.RoleAdmin))
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "INVALID_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestAuthMiddleware_CabecerasRechazadas(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUserID, testCompanyID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name, header, code string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"esquema distinto", "Token abc", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"firma ajena", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	app := mutationApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, app, tc.header)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}
