package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/pkg/jwt"
	"github.com/vbook/vbook_go_server/internal/pkg/response"
)

const (
	UserIDKey = "userID"
)

// bearerToken 从 Authorization 头提取 Bearer token，没有或格式不对返回空串
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}

// Auth 登录认证中间件。过期与无效 token 分开提示，
// 前端据此决定是否引导重新登录。
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AuthError(c, "请先登录")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(token, jwtSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.AuthError(c, "登录已过期，请重新登录")
			} else {
				response.AuthError(c, "认证失败")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件。免费内容游客可读，
// 带合法 token 时注入用户身份用于个人状态（收藏、评分、阅读位置）；
// token 无效不拦截，按游客继续。
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.ParseToken(token, jwtSecret); err == nil {
				c.Set(UserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}
