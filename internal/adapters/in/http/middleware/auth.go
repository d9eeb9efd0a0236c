// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// TokenVerifier is satisfied by *fbauth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
)

// AuthMiddleware requires "Authorization: Bearer <Firebase ID token>".
type AuthMiddleware struct {
	Verifier TokenVerifier
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		email := ""
		if raw, ok := token.Claims["email"]; ok {
			if e, ok := raw.(string); ok && strings.TrimSpace(e) != "" {
				email = strings.TrimSpace(e)
				ctx = context.WithValue(ctx, ctxKeyEmail, email)
			}
		}

		log.Printf("[AuthMiddleware] path=%s uid=%s email=%s", r.URL.Path, uid, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UID returns the verified Firebase uid, if the request went through AuthMiddleware.
func UID(r *http.Request) (string, bool) {
	v, ok := r.Context().Value(ctxKeyUID).(string)
	return v, ok && v != ""
}

func Email(r *http.Request) (string, bool) {
	v, ok := r.Context().Value(ctxKeyEmail).(string)
	return v, ok && v != ""
}
