package user

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) GetID() string {
	return u.ID
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

// ActiveExcept returns the active users whose id is not in taken, keeping
// the input order. Pickers use it so a user is never offered twice.
func ActiveExcept(users []User, taken map[string]bool) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.IsActive && !taken[u.ID] {
			out = append(out, u)
		}
	}
	return out
}
