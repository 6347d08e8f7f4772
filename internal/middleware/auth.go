package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"taskdeck/internal/auth"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/httputil"
)

// IdentityResolver maps a verified external identity to a local user ID
type IdentityResolver interface {
	ResolveExternal(ctx context.Context, profile *models.ExternalProfile) (string, error)
}

// AuthMiddleware authenticates every request outside publicPaths.
// A path ending in "/" matches as a prefix. The credential is read from the
// Authorization bearer header, falling back to the session cookie.
func AuthMiddleware(verifier auth.TokenVerifier, resolver IdentityResolver, publicPaths []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS pre-flight carries no credentials
			if r.Method == http.MethodOptions || isPublicPath(r.URL.Path, publicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			identity, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				unauthorized(w)
				return
			}

			userID := identity.UserID
			if userID == "" && identity.Profile != nil {
				userID, err = resolver.ResolveExternal(r.Context(), identity.Profile)
				if err != nil {
					logger.Error("failed to resolve external identity",
						"external_id", identity.Profile.ExternalID(),
						"error", err,
					)
					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
					return
				}
			}
			if userID == "" {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}

func isPublicPath(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

func extractToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
}
