package utils

import "github.com/gin-gonic/gin"

// context keys set by the auth middlewares
const (
	CtxUserID   = "userId"
	CtxUsername = "username"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(CtxUserID)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentUsername(c *gin.Context) string {
	return c.GetString(CtxUsername)
}
