package routes

import (
	"ttm_chat_server/internal/config"
	"ttm_chat_server/internal/handlers"
	"ttm_chat_server/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes 注册对话相关路由
func RegisterChatRoutes(r *gin.Engine, chatService *services.ChatService, wsConfig config.WebSocketConfig) {
	// 创建处理器
	chatHandler := handlers.NewChatHandler(chatService)
	wsHandler := handlers.NewWSChatHandler(chatService, wsConfig)

	// HTTP流式对话
	r.POST("/chat/stream", chatHandler.HandleChatStream)

	// WebSocket流式对话
	r.GET("/chat/ws", wsHandler.HandleWebSocket)
}
