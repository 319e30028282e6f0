package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/config"
)

// CORS 跨域中间件。来源白名单来自配置，配置 * 放行全部来源；
// 方法与头部列表在启动时拼好，不在每个请求里重复计算。
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowAll := false
	allowedOrigins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowedOrigins[origin] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		_, allowed := allowedOrigins[origin]
		if origin != "" && (allowAll || allowed) {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
