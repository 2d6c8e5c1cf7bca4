package services

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"ttm_chat_server/internal/models"
)

// ChatService 处理一次咨询对话请求
type ChatService struct {
	registry *Registry
}

// NewChatService 创建对话服务
func NewChatService(registry *Registry) *ChatService {
	return &ChatService{registry: registry}
}

// Registry 返回阶段注册表
func (s *ChatService) Registry() *Registry {
	return s.registry
}

// ProcessStream 处理对话请求，按生成顺序通过emit回调输出片段，返回更新后的状态。
// 生成出错时已输出的片段保持原样，由调用方决定如何收尾。
func (s *ChatService) ProcessStream(ctx context.Context, state models.ConversationState, emit func(string) error) (models.ConversationState, error) {
	// 验证状态
	if err := state.Validate(); err != nil {
		return state, err
	}

	// 查找阶段代理
	agent, err := s.registry.Resolve(state.Stage)
	if err != nil {
		return state, err
	}

	// 模型未就绪时快速失败，不等待加载
	if !agent.Loader().Ready() {
		status := agent.Loader().Status()
		return state, &models.ModelLoadError{Stage: state.Stage, Err: status.Error}
	}

	// 首次进入本阶段时先输出引导语，不调用模型
	if !state.IntroShown {
		if err := emit(agent.Intro); err != nil {
			return state, err
		}
		return state.NextIntro(agent.Intro), nil
	}

	// 输入过短时输出回退语，不调用模型
	question := strings.TrimSpace(state.Question)
	if utf8.RuneCountInString(question) < agent.MinInput {
		if err := emit(agent.Fallback); err != nil {
			return state, err
		}
		return state.Next(agent.Fallback), nil
	}

	log.Printf("收到用户输入: stage=%s turn=%d len=%d", state.Stage, state.Turn, utf8.RuneCountInString(question))

	// 流式生成并收集完整回复
	var full strings.Builder
	firstTokenSent := false
	messages := agent.BuildMessages(state)

	err = agent.Loader().GenerateStream(ctx, messages, func(token string) error {
		full.WriteString(token)
		if !firstTokenSent {
			firstTokenSent = true
			if err := emit("\n"); err != nil {
				return err
			}
		}
		return emit(token)
	})
	if err != nil {
		return state, err
	}

	// 模型输出为空时使用默认回复
	reply := strings.TrimSpace(full.String())
	if utf8.RuneCountInString(reply) < 2 {
		reply = agent.EmptyReply
		if err := emit(reply); err != nil {
			return state, err
		}
	}

	return state.Next(reply), nil
}
