package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

const (
	ctxUserID = "userId"
	ctxRole   = "role"
)

func SetIdentity(c *gin.Context, claims *Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
}

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

func CurrentRole(c *gin.Context) entity.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(entity.Role); ok {
			return r
		}
	}
	return ""
}
