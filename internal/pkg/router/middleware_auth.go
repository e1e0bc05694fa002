package router

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/jwt"
)

// middlewareAuthentication guards non-public endpoints. A request passes when
// it carries a bearer token that verifies cryptographically AND whose token
// ID is still present in the active-token allow-list; revoking a token makes
// it fail here even before its expiry.
func middlewareAuthentication(verifier jwt.JWT, tokens TokenChecker, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[matchedRoutePath(r)]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeJSON(w, failure("Authentication required", nil, nil), http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				writeJSON(w, failure("Invalid or expired token", nil, nil), http.StatusUnauthorized)
				return
			}

			if tokens != nil {
				active, err := tokens.IsActive(r.Context(), claims.ID)
				if err != nil {
					slog.ErrorContext(r.Context(), "token allow-list lookup failed", "error", err)
					writeJSON(w, failure("Internal server error", nil, nil), http.StatusInternalServerError)
					return
				}
				if !active {
					writeJSON(w, failure("Invalid or expired token", nil, nil), http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
