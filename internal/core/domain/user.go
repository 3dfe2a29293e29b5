package domain

import "time"

// Role is the closed set of privilege levels an account can hold. Roles are
// compared directly as typed values, never as serialized authority strings.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models a registered account. The password hash never leaves the
// service layer.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the request-scoped identity attached by the auth middleware
// after token validation. Exactly one principal (or none) exists per request
// and it is never mutated after attachment.
type Principal struct {
	Username string
	Role     Role
}

// CanMutate decides whether p may update or delete a resource owned by owner.
// Admins may mutate anything; users only what they own.
func CanMutate(p Principal, owner string) bool {
	return p.Role == RoleAdmin || p.Username == owner
}
