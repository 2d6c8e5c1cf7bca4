package models

// StreamEventType 流式事件类型
type StreamEventType string

// 定义流式事件类型常量
const (
	StreamEventFragment StreamEventType = "fragment"  // 文本片段
	StreamEventEndStage StreamEventType = "end_stage" // 阶段结束，携带更新后的状态
	StreamEventError    StreamEventType = "error"     // 生成出错
)

// StreamEvent WebSocket通道上的流式事件
type StreamEvent struct {
	Type      StreamEventType    `json:"type"`              // 事件类型
	SessionID string             `json:"session_id"`        // 会话标识
	Content   string             `json:"content,omitempty"` // 文本内容
	State     *ConversationState `json:"state,omitempty"`   // 更新后的状态
}
