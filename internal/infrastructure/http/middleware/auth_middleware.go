package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-assistant/pkg/jwt"
)

const (
	// UserIDContextKey is the echo context key for the authenticated user id
	UserIDContextKey = "user_id"
	// UserRoleContextKey is the echo context key for the authenticated user role
	UserRoleContextKey = "user_role"
)

// Auth validates bearer tokens minted by the external auth service
type Auth struct {
	jwtManager *jwt.Manager
}

// NewAuth creates the auth middleware
func NewAuth(jwtManager *jwt.Manager) *Auth {
	return &Auth{jwtManager: jwtManager}
}

// Authenticate validates the JWT token and adds the user to the context
func (a *Auth) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c.Request())
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"error":   "unauthorized",
				"message": "missing authorization token",
			})
		}

		claims, err := a.jwtManager.Validate(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"error":   "unauthorized",
				"message": "invalid or expired token",
			})
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Set(UserRoleContextKey, claims.Role)
		return next(c)
	}
}

// UserID extracts the authenticated user id from the echo context
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDContextKey).(uuid.UUID)
	return id, ok
}

// extractToken reads a bearer token from the Authorization header, falling
// back to the access_token cookie
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	cookie, err := r.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}
