package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims of the session token issued after login.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SessionClaims) GetUserID() string {
	return c.Subject
}

// ExternalClaims are the claims of a bearer token minted by an external
// OIDC-style identity provider and verified against its JWKS.
type ExternalClaims struct {
	jwt.RegisteredClaims
	Email             string `json:"email"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Picture           string `json:"picture"`
	Profile           string `json:"profile"`
}

// Identity is the authenticated caller resolved from a request credential.
type Identity struct {
	// UserID is set for session tokens; empty for external tokens until resolved.
	UserID  string
	Profile *ExternalProfile
}
