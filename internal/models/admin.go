package models

import "github.com/golang-jwt/jwt/v5"

// AdminRole is the staff role carried in an admin access token.
type AdminRole string

const (
	// RoleAdmin has full access to the roster.
	RoleAdmin AdminRole = "ADMIN"
	// RoleRegistrar manages registrations for the front office.
	RoleRegistrar AdminRole = "REGISTRAR"
)

// AdminClaims represents the JWT payload for staff access tokens.
type AdminClaims struct {
	Role AdminRole `json:"role"`
	Name string    `json:"name,omitempty"`
	jwt.RegisteredClaims
}
