package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/service"
)

// ContextKey est un type dédié pour les clés de contexte
type ContextKey string

// CallerKey est la clé de contexte portant l'identité de l'appelant
const CallerKey ContextKey = "caller"

// AuthMiddleware crée le middleware de validation des tokens JWT. En cas
// de succès l'identité de l'appelant est placée dans le contexte de la
// requête.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"missing authorization header"}}`, http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid authorization header format"}}`, http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CallerKey, claims.Caller())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCallerFromContext extrait l'identité de l'appelant du contexte. Une
// valeur zéro (non authentifiée) est retournée si elle est absente.
func GetCallerFromContext(ctx context.Context) rbac.Caller {
	caller, ok := ctx.Value(CallerKey).(rbac.Caller)
	if !ok {
		return rbac.Caller{}
	}
	return caller
}
