package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// UserNameKey is the context key for the calling participant's name.
	UserNameKey ContextKey = "user_name"

	// UserNameHeader carries the participant name on every request.
	// Authentication proper is handled upstream; within a group the
	// display name is the identity.
	UserNameHeader = "X-User-Name"
)

// Identity extracts the participant name from the request header and puts
// it on the context. Requests without a name pass through; handlers that
// need an identity reject them individually.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.Header.Get(UserNameHeader))
		if name != "" {
			ctx := context.WithValue(r.Context(), UserNameKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserName extracts the participant name from the request context.
func GetUserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}
