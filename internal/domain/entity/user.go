package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario del sistema (boundary de autenticación).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string // admin | bodeguero | vendedor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
