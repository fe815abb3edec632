package middleware

import (
	"strings"

	"buddyboost/pkg/apperr"
	"buddyboost/pkg/jwt"
	"buddyboost/pkg/response"

	"github.com/gin-gonic/gin"
)

// Identity is the authenticated caller derived from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// AuthedHandler is a handler that only runs for authenticated callers.
type AuthedHandler func(c *gin.Context, identity Identity)

// Authenticate validates an Authorization header value. A missing or
// malformed header is Unauthenticated; a token that fails verification is
// Forbidden.
func Authenticate(jwtService *jwt.Service, header string) (Identity, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return Identity{}, apperr.Unauthenticated("Access token required")
	}

	claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return Identity{}, apperr.Forbidden("Invalid or expired token")
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// RequireAuth wraps handlers so they receive the caller's Identity as an
// argument instead of reading it back out of the gin context.
func RequireAuth(jwtService *jwt.Service) func(AuthedHandler) gin.HandlerFunc {
	return func(next AuthedHandler) gin.HandlerFunc {
		return func(c *gin.Context) {
			identity, err := Authenticate(jwtService, c.GetHeader("Authorization"))
			if err != nil {
				response.Error(c, err, "Authentication failed")
				return
			}
			next(c, identity)
		}
	}
}
