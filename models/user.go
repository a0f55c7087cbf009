package models

import "time"

type Role string

const (
	RoleSeller   Role = "SELLER"
	RoleCustomer Role = "CUSTOMER"
)

// ValidRole reports whether s is one of the two account roles.
func ValidRole(s string) bool {
	return Role(s) == RoleSeller || Role(s) == RoleCustomer
}

// User is the identity record shared between the auth service and the
// clients. Password carries the bcrypt hash; it never leaves the auth
// service boundary and is excluded from every JSON response.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Role      Role      `gorm:"type:VARCHAR(20);not null" json:"role"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
