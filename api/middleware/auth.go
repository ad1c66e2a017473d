package middleware

import (
	"net/http"
	"strings"
	"time"

	pkgAuth "github.com/electrostorehq/backend/pkg/auth"
	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/logger"
)

// Identity attributes the request to a user when a valid bearer token is
// present. It never aborts the request: a missing header, unparsable or
// expired token, or unknown subject simply leaves the request unauthenticated
// and lets the route-level gates decide. Failures are logged, not returned.
func IdentityFilter(cfg config.JWTConfig, resolver IdentityResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" || !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			token := strings.TrimSpace(raw[7:])
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			email, err := pkgAuth.Subject(cfg, token)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", err.Error()), "auth.token_rejected")
				}
				next.ServeHTTP(w, r)
				return
			}

			if pkgAuth.IsExpired(cfg, token, time.Now()) {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "subject", email), "auth.token_expired")
				}
				next.ServeHTTP(w, r)
				return
			}

			identity, err := resolveIdentity(r, resolver, email)
			if err != nil || identity == nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "subject", email), "auth.subject_unresolved")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithIdentity(ctx, *identity)
			if logg != nil {
				fields := map[string]any{"user_id": identity.UserID}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveIdentity(r *http.Request, resolver IdentityResolver, email string) (*Identity, error) {
	if resolver == nil {
		return nil, nil
	}
	return resolver.ResolveIdentity(r.Context(), email)
}
