package auth

import (
	"net/http"
	"strings"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

// AuthenticationMiddleware requires a valid bearer token and stores the
// resulting session on the request context.
func AuthenticationMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				core.WriteUnauthorized(w, r)
				return
			}

			claims, err := ParseToken(secret, strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				core.WriteUnauthorized(w, r)
				return
			}

			session := core.ContextSession{
				UserID:     uuid.MustParse(claims.Subject),
				Privileges: claims.Privileges,
			}

			next.ServeHTTP(w, r.WithContext(core.WithSession(r.Context(), session)))
		})
	}
}

func RequirePrivilege(privilege Privilege) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := core.Session(r.Context())
			if !ok {
				core.WriteUnauthorized(w, r)
				return
			}

			if !session.HasPrivilege(privilege) {
				core.WriteForbidden(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
