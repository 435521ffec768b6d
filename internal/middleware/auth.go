package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FbcGa/sparkTasks-backend/internal/auth"
	"github.com/FbcGa/sparkTasks-backend/internal/constants"
	apierrors "github.com/FbcGa/sparkTasks-backend/internal/errors"
)

// RequireAuth checks the Authorization header for a valid bearer token
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, constants.BearerSchemePrefix) {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := issuer.Verify(strings.TrimPrefix(header, constants.BearerSchemePrefix))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
