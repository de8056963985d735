package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dealmarket/bff/internal/ctxkeys"
	"github.com/dealmarket/bff/internal/identity"
)

// SubjectVerifier turns a bearer token into its subject claim.
type SubjectVerifier interface {
	Subject(token string) (string, error)
}

// RequireBearer rejects requests without a valid bearer token and stores the
// token subject in the request context.
func RequireBearer(verifier SubjectVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := identity.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			subject, err := verifier.Subject(token)
			if err != nil {
				slog.Debug("bearer token rejected", "error", err, "path", r.URL.Path)
				unauthorized(w)
				return
			}

			next(w, r.WithContext(ctxkeys.WithSubject(r.Context(), subject)))
		}
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"code":"authentification.requise"}`))
}
