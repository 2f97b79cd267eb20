package models

import (
	"time"
)

// User is an authentication identity, mapped 1:1 to at most one Resource.
// Roles come from the fixed set in the rbac package; permissions are
// derived from roles at evaluation time, never stored per user.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ResourceID   *string   `json:"resourceId,omitempty"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreateTime   time.Time `json:"createTime"`
	ChangeTime   time.Time `json:"changeTime"`
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
