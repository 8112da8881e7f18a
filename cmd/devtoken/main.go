// devtoken emite un token de sesión para desarrollo local. El login real lo resuelve otro servicio.
//
// Uso: go run ./cmd/devtoken -company <uuid> [-user <uuid>] [-role admin]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/pkg/config"
	"github.com/jhoicas/inventario-core/pkg/jwt"
)

func main() {
	companyID := flag.String("company", "", "id de la empresa (requerido)")
	userID := flag.String("user", "", "id del usuario; por defecto uno nuevo")
	role := flag.String("role", entity.RoleAdmin, "admin | bodeguero | vendedor")
	flag.Parse()

	if _, err := uuid.Parse(*companyID); err != nil {
		fmt.Fprintln(os.Stderr, "-company debe ser un uuid válido")
		os.Exit(2)
	}
	if *userID == "" {
		*userID = uuid.NewString()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *companyID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
