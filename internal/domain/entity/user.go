package entity

// Roles válidos en el token de sesión.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// MutatingRoles son los roles que pueden crear, editar o eliminar categorías.
var MutatingRoles = []string{RoleAdmin, RoleBodeguero}
