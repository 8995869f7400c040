// Package auth provides the Basic authentication handshake: it decodes a
// credential pair from the Authorization header, verifies it against the
// account service, and attaches the resulting account id to the request
// context as the caller's identity.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// CredentialVerifier verifies a credential pair and returns the account id
// as the caller's identity. ok is false for any expected authentication
// failure; err is reserved for system faults.
type CredentialVerifier interface {
	Login(ctx context.Context, username, password string) (id uuid.UUID, ok bool, err error)
}

type contextKey struct{}

var identityKey = contextKey{}

// AccountID extracts the authenticated account id from the request context
func AccountID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(identityKey).(uuid.UUID)
	return id, ok
}

// WithAccountID returns a context carrying the authenticated account id.
// Exported for handler tests.
func WithAccountID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// BasicAuth returns middleware enforcing the Basic handshake. The same 401
// is returned whether the header was missing, malformed, or the credentials
// were wrong, so a caller learns nothing about which step failed.
func BasicAuth(verifier CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, r)
				return
			}

			id, ok, err := verifier.Login(r.Context(), username, password)
			if err != nil {
				slog.Error("Credential verification failed", "err", err)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"message": "internal error"})
				return
			}
			if !ok {
				unauthorized(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="simple-account"`)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"message": "authentication failed"})
}
