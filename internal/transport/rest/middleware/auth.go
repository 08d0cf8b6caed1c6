package middleware

import (
	"context"
	"net/http"
	"strings"

	"asdscreen/internal/service"
)

type contextKey string

const (
	// ClinicianIDKey carries the authenticated clinician through the request context
	ClinicianIDKey contextKey = "clinicianId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireClinician validates the clinician JWT from the Authorization header
func (m *AuthMiddleware) RequireClinician(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ClinicianIDKey, claims.ClinicianID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClinicianID extracts the clinician ID from context
func GetClinicianID(ctx context.Context) string {
	if v := ctx.Value(ClinicianIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
