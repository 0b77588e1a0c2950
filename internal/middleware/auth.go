package middleware

import (
	"net/http"
	"strings"

	"profhub/internal/pkg/jwt"
	"profhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth accepts a bearer token or, when the header is absent, the session
// cookie. On success it sets "user_id" and "email" in the context.
func JWTAuth(jwtService *jwt.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code, msg := extractToken(c, cookieName)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, code, msg)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (token, code, msg string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'"
		}
		return strings.TrimSpace(parts[1]), "", ""
	}

	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v, "", ""
		}
	}
	return "", "AUTH_HEADER_MISSING", "Authorization header is required"
}
