// Package handlers 提供HTTP请求处理器
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ttm_chat_server/internal/models"
	"ttm_chat_server/internal/services"

	"github.com/gin-gonic/gin"
)

// ChatHandler 流式对话处理器
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler 创建流式对话处理器
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// HandleChatStream 处理流式对话请求。
// 先输出文本片段，再追加一个携带更新后状态的结束标记块。
func (h *ChatHandler) HandleChatStream(c *gin.Context) {
	var req models.ChatStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	// 片段按生成顺序直接写入响应，每个片段后刷新一次
	streamed := false
	emit := func(fragment string) error {
		if !streamed {
			streamed = true
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("Cache-Control", "no-cache")
			c.Status(http.StatusOK)
		}
		if _, err := c.Writer.WriteString(fragment); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	next, err := h.chatService.ProcessStream(c.Request.Context(), req.State, emit)
	if err != nil {
		h.writeError(c, err, streamed)
		return
	}

	// 输出结束标记块
	payload, err := json.Marshal(next)
	if err != nil {
		log.Printf("序列化状态失败: %v", err)
		h.writeError(c, err, streamed)
		return
	}
	c.Writer.WriteString("\n" + models.EndStageMarker + "\n")
	c.Writer.Write(payload)
	c.Writer.Flush()
}

// writeError 将错误转换为调用方可见的响应。
// 尚未输出片段时返回对应状态码，已输出片段时以错误标记收尾。
func (h *ChatHandler) writeError(c *gin.Context, err error, streamed bool) {
	log.Printf("对话请求失败: %v", err)

	if streamed {
		payload, _ := json.Marshal(gin.H{"error": err.Error()})
		c.Writer.WriteString("\n" + models.StageErrorMarker + "\n")
		c.Writer.Write(payload)
		c.Writer.Flush()
		return
	}

	var validationErr *models.ValidationError
	var loadErr *models.ModelLoadError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &loadErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": loadErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
