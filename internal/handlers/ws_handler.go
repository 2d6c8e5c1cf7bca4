package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"ttm_chat_server/internal/config"
	"ttm_chat_server/internal/models"
	"ttm_chat_server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSChatHandler WebSocket对话处理器
type WSChatHandler struct {
	chatService *services.ChatService
	upgrader    websocket.Upgrader
	cfg         config.WebSocketConfig
	sessions    map[string]*WSChatSession
	mu          sync.RWMutex
}

// WSChatSession WebSocket对话会话
type WSChatSession struct {
	ID   string
	conn *websocket.Conn
	mu   sync.Mutex // 保护并发写
}

// NewWSChatHandler 创建WebSocket对话处理器
func NewWSChatHandler(chatService *services.ChatService, cfg config.WebSocketConfig) *WSChatHandler {
	return &WSChatHandler{
		chatService: chatService,
		cfg:         cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		sessions: make(map[string]*WSChatSession),
	}
}

// HandleWebSocket 处理WebSocket连接，每条消息是一个对话状态，回复以事件帧流式返回
func (h *WSChatHandler) HandleWebSocket(c *gin.Context) {
	// 升级HTTP连接为WebSocket
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("升级WebSocket连接失败: %v", err)
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session := &WSChatSession{
		ID:   sessionID,
		conn: ws,
	}

	// 保存会话
	h.mu.Lock()
	h.sessions[sessionID] = session
	h.mu.Unlock()

	h.handleSession(c, session)
}

// handleSession 处理会话消息循环
func (h *WSChatHandler) handleSession(c *gin.Context, session *WSChatSession) {
	done := make(chan struct{})
	defer func() {
		close(done)
		session.conn.Close()
		h.mu.Lock()
		delete(h.sessions, session.ID)
		h.mu.Unlock()
	}()

	// 心跳保活
	session.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	session.conn.SetPongHandler(func(string) error {
		return session.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})
	go h.keepAlive(session, done)

	for {
		_, data, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("读取WebSocket消息失败: %v", err)
			}
			return
		}

		var req models.ChatStreamRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.writeEvent(session, models.StreamEvent{
				Type:      models.StreamEventError,
				SessionID: session.ID,
				Content:   "请求解析失败: " + err.Error(),
			})
			continue
		}
		if req.State.SessionID == "" {
			req.State.SessionID = session.ID
		}

		h.processMessage(c, session, req.State)
	}
}

// processMessage 处理单条对话消息并流式返回事件帧
func (h *WSChatHandler) processMessage(c *gin.Context, session *WSChatSession, state models.ConversationState) {
	emit := func(fragment string) error {
		return h.writeEvent(session, models.StreamEvent{
			Type:      models.StreamEventFragment,
			SessionID: session.ID,
			Content:   fragment,
		})
	}

	next, err := h.chatService.ProcessStream(c.Request.Context(), state, emit)
	if err != nil {
		log.Printf("对话请求失败: session=%s err=%v", session.ID, err)
		h.writeEvent(session, models.StreamEvent{
			Type:      models.StreamEventError,
			SessionID: session.ID,
			Content:   err.Error(),
		})
		return
	}

	h.writeEvent(session, models.StreamEvent{
		Type:      models.StreamEventEndStage,
		SessionID: session.ID,
		State:     &next,
	})
}

// writeEvent 序列化并发送单个事件帧
func (h *WSChatHandler) writeEvent(session *WSChatSession, event models.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.conn.WriteMessage(websocket.TextMessage, data)
}

// keepAlive 按心跳间隔发送Ping帧
func (h *WSChatHandler) keepAlive(session *WSChatSession, done <-chan struct{}) {
	ticker := time.NewTicker(h.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			session.mu.Lock()
			err := session.conn.WriteMessage(websocket.PingMessage, nil)
			session.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
