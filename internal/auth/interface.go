package auth

import (
	"errors"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
)

// SessionCookieName is the cookie carrying the session token for browser clients.
const SessionCookieName = "taskdeck_session"

// TokenVerifier validates a bearer credential and returns the caller's identity.
// Implementations return domain.ErrUnauthorized for any token they reject.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*models.Identity, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}

// ChainVerifier tries each verifier in order and accepts the first identity returned.
type ChainVerifier []TokenVerifier

// VerifyToken implements TokenVerifier
func (c ChainVerifier) VerifyToken(tokenString string) (*models.Identity, error) {
	for _, v := range c {
		identity, err := v.VerifyToken(tokenString)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
	}
	return nil, domain.ErrUnauthorized
}

// Close closes every verifier and returns the first error
func (c ChainVerifier) Close() error {
	var first error
	for _, v := range c {
		if err := v.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
