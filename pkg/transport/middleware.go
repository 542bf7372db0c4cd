package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/raywall/bar-order-service/pkg/apperr"
	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/rs/zerolog/log"
)

const (
	corsAllowMethods = "GET,POST,PATCH,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

var corsHandler = cors.Handler(cors.Options{
	AllowedOrigins:     []string{"*"},
	AllowedMethods:     strings.Split(corsAllowMethods, ","),
	AllowedHeaders:     []string{"Content-Type", "Authorization"},
	OptionsPassthrough: true,
})

// CORSMiddleware negocia CORS via go-chi/cors e fixa os headers
// compartilhados em toda resposta, com ou sem Origin. O preflight termina
// com 200 vazio.
func CORSMiddleware(next http.Handler) http.Handler {
	return corsHandler(sharedCORSHeaders(next))
}

func sharedCORSHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TimeoutMiddleware limita a duração do contexto da requisição.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticated exige identidade e grava as claims no contexto. Com
// adminOnly, também exige o grupo admin (ou platform-admin).
func authenticated(auth identity.Authenticator, policy identity.Policy, adminOnly bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := identity.Require(auth, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if adminOnly && !policy.IsAdmin(claims) && !policy.IsPlatformAdmin(claims) {
			writeError(w, r, apperr.Forbidden("admin privileges required"))
			return
		}

		logger := log.Ctx(r.Context()).With().Str("subject", claims.Subject).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = identity.WithClaims(ctx, claims)
		next(w, r.WithContext(ctx))
	}
}

// tenantOf resolve o tenant do caller autenticado.
func tenantOf(r *http.Request) (identity.Claims, string, error) {
	claims, ok := identity.FromContext(r.Context())
	if !ok {
		return identity.Claims{}, "", apperr.Forbidden("authentication required")
	}
	tenantID, err := identity.TenantIDFor(claims.Subject)
	if err != nil {
		return identity.Claims{}, "", err
	}
	return claims, tenantID, nil
}
