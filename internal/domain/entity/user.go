package entity

import "time"

// Roles de usuario para el middleware RBAC.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User usuario del back office. El ID se pasa como actor explícito a cada
// operación del Ledger para la atribución en la bitácora.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"password_hash"` // bcrypt, nunca en claro
	Role         string     `json:"role"`
	Active       bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
