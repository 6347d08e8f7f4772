package auth

import (
	"errors"
	"fmt"
	"time"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "taskdeck"

// SessionManager issues and verifies the HS256 session tokens handed out after login.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a session manager signing with secret.
func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 bytes")
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a session token for user and returns it with its expiry.
func (m *SessionManager) Issue(user *models.User) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)

	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Username: user.Username,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expires, nil
}

// VerifyToken implements TokenVerifier for session tokens.
func (m *SessionManager) VerifyToken(tokenString string) (*models.Identity, error) {
	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if claims.GetUserID() == "" {
		return nil, domain.ErrUnauthorized
	}

	return &models.Identity{UserID: claims.GetUserID()}, nil
}

// Close is a no-op; the manager holds no external resources.
func (m *SessionManager) Close() error { return nil }
