// Package tenant define el contexto de empresa activo de una petición.
//
// Toda consulta sobre una tabla con ámbito incluye CurrentCompanyID() como predicado
// explícito; el aislamiento entre empresas se aplica en la construcción de las consultas,
// no en la base de datos.
package tenant

import (
	"context"
	"slices"

	"github.com/jhoicas/inventario-core/internal/domain"
)

// Context es la identidad de la petición: empresa, usuario, rol y sesión.
// Es inmutable durante la petición.
type Context struct {
	CompanyID string
	UserID    string
	Role      string
	SessionID string
}

// CurrentCompanyID devuelve la empresa activa.
func (c Context) CurrentCompanyID() string { return c.CompanyID }

// IsLoggedIn informa si la petición trae una sesión autenticada.
func (c Context) IsLoggedIn() bool {
	return c.UserID != "" && c.SessionID != ""
}

// Validate falla con domain.ErrUnauthorized si falta la empresa o la sesión.
func (c Context) Validate() error {
	if c.CompanyID == "" || !c.IsLoggedIn() {
		return domain.ErrUnauthorized
	}
	return nil
}

// HasRole informa si el rol de la sesión está entre los indicados.
func (c Context) HasRole(roles ...string) bool {
	return c.Role != "" && slices.Contains(roles, c.Role)
}

type ctxKey struct{}

// NewContext adjunta el contexto de empresa a ctx.
func NewContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

// FromContext recupera el contexto de empresa adjunto con NewContext.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(ctxKey{}).(Context)
	return tc, ok
}
