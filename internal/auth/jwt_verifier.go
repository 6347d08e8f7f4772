package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier accepts bearer tokens minted by an external OIDC-style
// identity provider, verified against the provider's published keys.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier that fetches public keys from jwksURL.
// keyfunc caches the key set and refreshes it in the background.
func NewJWKSVerifier(ctx context.Context, jwksURL string, logger *slog.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWKS verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates an external token. The returned identity carries the
// external profile; the caller maps it to a user.
func (v *JWKSVerifier) VerifyToken(tokenString string) (*models.Identity, error) {
	claims := &models.ExternalClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc,
		// Asymmetric only, prevents algorithm confusion
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		v.logger.Debug("external token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		v.logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	username := claims.PreferredUsername
	if username == "" {
		username = claims.Email
	}

	return &models.Identity{
		Profile: &models.ExternalProfile{
			Provider:    "oidc",
			ProviderID:  claims.Subject,
			Username:    username,
			DisplayName: claims.Name,
			ProfileURL:  claims.Profile,
			ProfilePic:  claims.Picture,
		},
	}, nil
}

// Close releases resources held by the verifier.
// keyfunc v3 stops its refresh goroutine when the constructor ctx is cancelled.
func (v *JWKSVerifier) Close() error {
	v.logger.Info("JWKS verifier closed")
	return nil
}
