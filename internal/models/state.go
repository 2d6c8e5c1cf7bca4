// Package models 定义对话领域模型
package models

// Stage 咨询阶段
type Stage string

// 定义咨询阶段常量
const (
	StageEmpathy Stage = "empathy" // 共情阶段
	StageMI      Stage = "mi"      // 动机强化阶段
	StageCBT1    Stage = "cbt1"    // 自动思维探索阶段
	StageCBT2    Stage = "cbt2"    // 认知重构阶段
	StageCBT3    Stage = "cbt3"    // 行动计划阶段
)

// Stages 返回全部合法阶段，顺序即约定的咨询流程顺序
func Stages() []Stage {
	return []Stage{StageEmpathy, StageMI, StageCBT1, StageCBT2, StageCBT3}
}

// Valid 判断阶段是否合法
func (s Stage) Valid() bool {
	switch s {
	case StageEmpathy, StageMI, StageCBT1, StageCBT2, StageCBT3:
		return true
	}
	return false
}

// Message 对话消息
type Message struct {
	Role string `json:"role"` // 消息角色：user/assistant
	Text string `json:"text"` // 消息内容
}

// ConversationState 由调用方维护的对话状态，核心侧只读
type ConversationState struct {
	SessionID  string    `json:"session_id"`  // 调用方提供的会话标识，核心不做校验
	Stage      Stage     `json:"stage"`       // 本次请求的咨询阶段
	Question   string    `json:"question"`    // 用户最新输入
	Response   string    `json:"response"`    // 上一轮助手回复
	History    []Message `json:"history"`     // 对话历史，由调用方维护
	Turn       int       `json:"turn"`        // 轮次计数，由调用方维护
	IntroShown bool      `json:"intro_shown"` // 阶段引导语是否已输出
}

// Validate 验证状态字段
func (s *ConversationState) Validate() error {
	if s.Stage == "" {
		return &ValidationError{Field: "stage", Message: "阶段不能为空"}
	}
	if !s.Stage.Valid() {
		return &ValidationError{Field: "stage", Message: "不支持的阶段: " + string(s.Stage)}
	}
	if s.Turn < 0 {
		return &ValidationError{Field: "turn", Message: "轮次不能为负数"}
	}
	return nil
}

// Next 生成回复后的下一轮状态副本，阶段保持不变，由调用方决定下一阶段
func (s ConversationState) Next(reply string) ConversationState {
	next := s
	next.Turn = s.Turn + 1
	next.IntroShown = true
	next.Response = reply
	next.History = make([]Message, 0, len(s.History)+2)
	next.History = append(next.History, s.History...)
	if s.Question != "" {
		next.History = append(next.History, Message{Role: "user", Text: s.Question})
	}
	next.History = append(next.History, Message{Role: "assistant", Text: reply})
	return next
}

// NextIntro 输出引导语后的下一轮状态副本，不消耗本轮用户输入
func (s ConversationState) NextIntro(intro string) ConversationState {
	next := s
	next.Turn = s.Turn + 1
	next.IntroShown = true
	next.Response = intro
	next.History = make([]Message, 0, len(s.History)+1)
	next.History = append(next.History, s.History...)
	next.History = append(next.History, Message{Role: "assistant", Text: intro})
	return next
}

// ChatStreamRequest 流式对话请求体
type ChatStreamRequest struct {
	State ConversationState `json:"state"` // 对话状态
}

// EndStageMarker 流式响应的结束标记
const EndStageMarker = "---END_STAGE---"

// StageErrorMarker 生成出错时的流式响应结束标记
const StageErrorMarker = "---STAGE_ERROR---"
