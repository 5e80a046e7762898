package auth

import (
	"net/http"
	"strings"
)

// Middleware creates a new middleware handler for authentication.
// Requests without an Authorization header pass through anonymously;
// handlers that need an identity reject those themselves.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := s.ValidateToken(parts[1])
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := SetIdentityInContext(r.Context(), claims.PlayerID, claims.CoupleID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
