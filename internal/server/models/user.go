// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the immutable role a user registers with.
type Role string

const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleLeader || r == RoleMember
}

// User is an identity record. PasswordHash is never returned past the
// credential service.
type User struct {
	Email        string
	Name         string
	Lastname     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the part of a User that sessions snapshot.
type Identity struct {
	Email    string
	Name     string
	Lastname string
	Role     Role
}

// Identity returns the snapshot fields of u.
func (u *User) Identity() Identity {
	return Identity{Email: u.Email, Name: u.Name, Lastname: u.Lastname, Role: u.Role}
}
