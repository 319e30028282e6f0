package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
)

// RequireRoles 角色校验中间件，命中任意一个角色即放行。
// 必须挂在 Auth 之后。
func RequireRoles(provider identity.Provider, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "请先登录")
			c.Abort()
			return
		}

		for _, role := range roles {
			in, err := provider.IsInRole(userID, role)
			if err != nil {
				response.ServerError(c, "权限校验失败")
				c.Abort()
				return
			}
			if in {
				c.Next()
				return
			}
		}

		response.PermissionError(c, "无权访问")
		c.Abort()
	}
}
