package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"taskdeck/internal/auth"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
	"taskdeck/internal/httputil"

	"github.com/google/uuid"
)

const (
	oauthStateCookie = "taskdeck_oauth_state"
	// States with this prefix answer the callback with JSON carrying the token
	// instead of redirecting, for terminal clients.
	cliStatePrefix = "cli."
	stateTTL       = 10 * time.Minute
)

// SessionIssuer signs session tokens for logged-in users
type SessionIssuer interface {
	Issue(user *models.User) (string, time.Time, error)
}

// UserHandler handles login, logout and profile requests
type UserHandler struct {
	userService   services.UserService
	sessions      SessionIssuer
	providers     map[string]auth.OAuthProvider
	frontendURL   string
	secureCookies bool
	logger        *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userService services.UserService,
	sessions SessionIssuer,
	providers []auth.OAuthProvider,
	frontendURL string,
	secureCookies bool,
	logger *slog.Logger,
) *UserHandler {
	byName := make(map[string]auth.OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	return &UserHandler{
		userService:   userService,
		sessions:      sessions,
		providers:     byName,
		frontendURL:   frontendURL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Login redirects to the provider's authorize URL
// GET /user/login?provider=github[&client=cli]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("provider")
	if name == "" {
		name = "github"
	}

	provider, ok := h.providers[name]
	if !ok {
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, "Login provider not configured",
			map[string]interface{}{"provider": name})
		return
	}

	state := uuid.NewString()
	if r.URL.Query().Get("client") == "cli" {
		state = cliStatePrefix + state
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusFound)
}

// Callback completes the login: exchanges the code, upserts the user and
// sets the session cookie
// GET /user/auth/{provider}/callback
func (h *UserHandler) Callback(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("provider")
	provider, ok := h.providers[name]
	if !ok {
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, "Login provider not configured",
			map[string]interface{}{"provider": name})
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || cookie.Value != state {
		h.logger.Warn("oauth state mismatch", "provider", name)
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.clearCookie(w, oauthStateCookie)

	profile, err := provider.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Warn("oauth exchange failed", "provider", name, "error", err)
		handleError(w, err)
		return
	}

	user, err := h.userService.LoginWithProfile(r.Context(), profile)
	if err != nil {
		handleError(w, err)
		return
	}

	token, expires, err := h.sessions.Issue(user)
	if err != nil {
		handleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	if strings.HasPrefix(state, cliStatePrefix) {
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Logged in",
			"token":   token,
			"user":    user,
		})
		return
	}

	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// Logout clears the session cookie
// GET /user/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, auth.SessionCookieName)
	httputil.RespondMessage(w, http.StatusOK, "Logged out successfully")
}

// Profile returns the current user
// GET /user/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetProfile(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
