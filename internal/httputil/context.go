package httputil

import (
	"context"
	"net/http"
)

type userIDKey struct{}

// WithUserID adds the authenticated user's ID to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey{}, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves the authenticated user's ID, empty on public routes
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey{}).(string)
	return userID
}
