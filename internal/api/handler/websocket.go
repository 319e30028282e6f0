package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
	"github.com/vbook/vbook_go_server/internal/pkg/jwt"
	"github.com/vbook/vbook_go_server/internal/pkg/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要验证 Origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebSocketHandler 管理后台实时转化推送连接
type WebSocketHandler struct {
	hub       *ws.Hub
	identity  identity.Provider
	jwtSecret string
}

func NewWebSocketHandler(hub *ws.Hub, provider identity.Provider, jwtSecret string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		identity:  provider,
		jwtSecret: jwtSecret,
	}
}

// Handle WebSocket 连接处理，仅限管理员
// GET /api/v1/admin/analytics/live?token=xxx
func (h *WebSocketHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	claims, err := jwt.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	allowed := false
	for _, role := range []string{model.RoleAdmin, model.RoleSuperAdmin} {
		in, err := h.identity.IsInRole(claims.UserID, role)
		if err == nil && in {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := ws.NewClient(claims.UserID, conn)
	h.hub.Register(client)

	// 保持连接，读取消息（主要用于检测断开）
	go func() {
		defer h.hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
