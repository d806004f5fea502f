package models

import "time"

// Employee roles.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Employee represents a system user: an administrator or a store seller.
// Employees are never hard-deleted; IsActive=false marks them removed.
type Employee struct {
	ID           int64     `json:"id" db:"id_employee"`
	Login        string    `json:"login" db:"login"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	StoreID      *int64    `json:"store_id,omitempty" db:"store_id"` // nil for admins
	StoreName    *string   `json:"store_name,omitempty"`
	IsActive     bool      `json:"active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
