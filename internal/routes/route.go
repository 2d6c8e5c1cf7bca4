// Package routes 注册HTTP路由
package routes

import (
	"ttm_chat_server/internal/config"
	"ttm_chat_server/internal/handlers"
	"ttm_chat_server/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, chatService *services.ChatService, wsConfig config.WebSocketConfig) {
	statusHandler := handlers.NewStatusHandler(chatService.Registry())

	// 存活探测与健康检查
	r.GET("/", statusHandler.HandleRoot)
	r.GET("/health", statusHandler.HandleHealth)

	// 各阶段就绪状态
	r.GET("/status", statusHandler.HandleStatus)

	// 注册对话路由
	RegisterChatRoutes(r, chatService, wsConfig)
}
