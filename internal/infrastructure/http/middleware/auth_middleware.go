package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/insighthub/meeting-insights/pkg/jwt"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ClientContextKey is the context key for the authenticated API client
	ClientContextKey ContextKey = "client"
)

// EchoAuth returns an echo middleware that validates the bearer
// service token on protected routes
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Missing authorization token",
				})
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid or expired token",
				})
			}

			c.Set(string(ClientContextKey), claims.ClientName)
			return next(c)
		}
	}
}

// extractToken pulls the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
