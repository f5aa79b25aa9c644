package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/mistauth/mist/internal/pkg/jwt"
)

// TokenChecker reports whether a cryptographically valid token is still
// active in storage, so revoked or superseded tokens stop working before
// their signature expires.
type TokenChecker interface {
	IsTokenActive(ctx context.Context, token string) (bool, error)
}

func middlewareAuthentication(verifier jwt.JWT, checker TokenChecker, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := matchedRoutePath(r)

			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[path]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			if checker != nil {
				active, err := checker.IsTokenActive(r.Context(), p[1])
				if err != nil {
					writeJSON(w, map[string]string{"message": "Internal server error"}, http.StatusInternalServerError)
					return
				}
				if !active {
					writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
					return
				}
			}

			ctx := jwt.SetAuth(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
