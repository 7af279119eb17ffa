package middlewares

import (
	"context"
	"net/http"
	"strings"

	"legalbot/legalbot/config"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserNameKey contextKey = "user_name"
	UserRoleKey contextKey = "user_role"
)

func parseToken(cfg config.Config, r *http.Request) (jwt.MapClaims, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return nil, false
	}
	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}

func withIdentity(ctx context.Context, claims jwt.MapClaims) (context.Context, bool) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return ctx, false
	}
	ctx = context.WithValue(ctx, UserIDKey, userID)
	if name, ok := claims["user_name"].(string); ok {
		ctx = context.WithValue(ctx, UserNameKey, name)
	}
	if role, ok := claims["role"].(string); ok {
		ctx = context.WithValue(ctx, UserRoleKey, role)
	}
	return ctx, true
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseToken(cfg, r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx, ok := withIdentity(r.Context(), claims)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches identity when a valid token is present but lets
// anonymous requests through. The chat routes need this for demo mode and
// shared links; handlers decide whether identity is required.
func OptionalAuth(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := parseToken(cfg, r); ok {
				if ctx, ok := withIdentity(r.Context(), claims); ok {
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(UserRoleKey).(string)
		if role != "admin" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user id, empty for anonymous requests.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

func UserName(ctx context.Context) string {
	name, _ := ctx.Value(UserNameKey).(string)
	return name
}
