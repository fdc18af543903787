package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sharayeh/internal/infrastructure/auth"
	"sharayeh/internal/shared/constants"
	"sharayeh/internal/shared/logger"
	"sharayeh/internal/shared/utils"
)

type AuthMiddleware struct {
	verifier *auth.JWTVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier *auth.JWTVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth verifies the bearer token and stores the opaque user id in the
// request context. Requests without a valid token never reach a handler.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		userID, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)

		c.Next()
	}
}

// UserID extracts the authenticated user id from the gin context.
func UserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}
