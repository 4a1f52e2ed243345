package middleware

import (
	"context"
	"net/http"
	"strings"

	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// Context keys for storing user data in request context
type contextKey string

const (
	ClaimsContextKey contextKey = "claims"
)

// UserAuthMiddleware protects routes to only logged-in users
func (mw *Middleware) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.authService.GetAccessTokenSecret())
		if err != nil {
			mw.logger.Warn("Failed to extract claims from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
			return
		}

		// Reject tokens revoked through logout
		blacklisted, err := mw.cacheService.IsTokenBlacklisted(claims.Jti)
		if err != nil {
			// Cache unreachable, fail open on the blacklist check
			mw.logger.Warn("Token blacklist check failed", gecho.Field("error", err))
		} else if blacklisted {
			gecho.Unauthorized(w, gecho.WithMessage("Session has been revoked"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffAuthMiddleware protects routes to staff users.
// Must be used after UserAuthMiddleware.
func (mw *Middleware) StaffAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok {
			gecho.Forbidden(w, gecho.WithMessage("Access denied"), gecho.Send())
			return
		}

		if claims.Role != string(tables.RoleAdmin) && claims.Role != string(tables.RoleSuperAdmin) {
			mw.logger.Warn("Non-staff user attempted to access staff route",
				gecho.Field("user_id", claims.Sub),
				gecho.Field("role", claims.Role),
			)
			gecho.Forbidden(w, gecho.WithMessage("Staff access required"), gecho.Send())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SuperuserAuthMiddleware protects routes to superadmin users only.
// Must be used after UserAuthMiddleware.
func (mw *Middleware) SuperuserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok {
			gecho.Forbidden(w, gecho.WithMessage("Access denied"), gecho.Send())
			return
		}

		if claims.Role != string(tables.RoleSuperAdmin) {
			mw.logger.Warn("Non-superadmin user attempted to access superadmin route",
				gecho.Field("user_id", claims.Sub),
				gecho.Field("role", claims.Role),
			)
			gecho.Forbidden(w, gecho.WithMessage("Superadmin access required"), gecho.Send())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}

// ClientIP extracts the real client IP from request headers
func ClientIP(r *http.Request) string {
	// Try X-Forwarded-For first (if behind proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
