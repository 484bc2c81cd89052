package domain

import "time"

// Role controls access to manager-only surfaces such as reports.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

// User represents an identity in the platform. Other entities reference
// users by id, never by embedding.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleManager
}
