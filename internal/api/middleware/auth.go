package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/services"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type sessionKeyType string

const sessionKey sessionKeyType = "session"

// SessionProvider is the narrow slice of the auth service the middleware needs.
type SessionProvider interface {
	GetSession(ctx context.Context, token string) (*services.Session, error)
}

// Auth resolves the bearer token into a request-scoped session. No ambient
// globals; handlers read the session back out of the context.
func Auth(sp SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				writeAuthError(w, appErr.CodeUnauthorized, "missing bearer token")
				return
			}
			token := strings.TrimSpace(ah[len("Bearer "):])
			sess, err := sp.GetSession(r.Context(), token)
			if err != nil {
				writeAuthError(w, appErr.CodeUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin sessions. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSession(r.Context())
		if sess == nil {
			writeAuthError(w, appErr.CodeUnauthorized, "missing session")
			return
		}
		if !sess.IsAdmin {
			writeAuthError(w, appErr.CodeForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession attaches a session to the context the same way Auth does.
func WithSession(ctx context.Context, sess *services.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// GetSession returns the session from context, or nil outside Auth.
func GetSession(ctx context.Context) *services.Session {
	if v := ctx.Value(sessionKey); v != nil {
		if s, ok := v.(*services.Session); ok {
			return s
		}
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, code appErr.Code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(types.StatusForCode(code))
	_ = json.NewEncoder(w).Encode(types.Fail(&types.APIError{Code: string(code), Message: msg}))
}
