package handlers

import (
	"net/http"

	"ttm_chat_server/internal/services"

	"github.com/gin-gonic/gin"
)

// StatusHandler 就绪状态处理器
type StatusHandler struct {
	registry *services.Registry
}

// NewStatusHandler 创建就绪状态处理器
func NewStatusHandler(registry *services.Registry) *StatusHandler {
	return &StatusHandler{registry: registry}
}

// HandleRoot 处理存活探测请求
func (h *StatusHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "TTM 챗봇 서버 실행 중",
	})
}

// HandleHealth 处理健康检查请求
func (h *StatusHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ttm_chat_server",
	})
}

// HandleStatus 返回各阶段模型的就绪状态
func (h *StatusHandler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Status())
}
