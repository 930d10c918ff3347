package domain

import (
	"errors"
	"time"
)

// User represents an account in the user directory.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleAdmin can manage the user directory in addition to the ledger
	RoleAdmin Role = "admin"

	// RoleViewer can read and record payments, but cannot manage users
	RoleViewer Role = "viewer"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleViewer: true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanManageUsers checks if the role can create user accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
