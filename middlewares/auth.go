package middlewares

import (
	"strings"

	"github.com/SrwR16/RecipeHub/pkg/resp"
	"github.com/SrwR16/RecipeHub/utils"
	"github.com/gin-gonic/gin"
)

func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), true
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set(utils.CtxUserID, claims.UserID)
	c.Set(utils.CtxUsername, claims.Username)
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearer(c)
		if !ok {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is sent and lets
// anonymous requests through. A bad token is treated as no token.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearer(c); ok {
			if claims, err := utils.ParseToken(tokenStr, secret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}
