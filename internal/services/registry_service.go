package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"ttm_chat_server/internal/clients/llama"
	"ttm_chat_server/internal/config"
	"ttm_chat_server/internal/models"
	"ttm_chat_server/internal/types"
)

// StageAgent 绑定到单个咨询阶段的生成代理
type StageAgent struct {
	Stage      models.Stage // 所属阶段
	Intro      string       // 阶段引导语
	Fallback   string       // 输入过短时的回退语
	EmptyReply string       // 模型输出为空时的默认回复
	MinInput   int          // 最小输入长度（字符数）

	systemPrompt string
	loader       *StageLoader
}

// Loader 返回本阶段的模型加载器
func (a *StageAgent) Loader() *StageLoader {
	return a.loader
}

// BuildMessages 根据对话状态构建本阶段的生成消息列表
func (a *StageAgent) BuildMessages(state models.ConversationState) []llama.ChatMessage {
	messages := []llama.ChatMessage{
		{Role: "system", Content: a.systemPrompt},
	}

	switch a.Stage {
	case models.StageMI:
		// 动机强化阶段只携带最近10条历史
		history := state.History
		if len(history) > 10 {
			history = history[len(history)-10:]
		}
		messages = appendHistory(messages, history)
	case models.StageCBT1:
		// 自动思维探索阶段携带完整历史
		messages = appendHistory(messages, state.History)
	}

	question := state.Question
	if a.Stage == models.StageCBT2 {
		// 认知重构阶段按轮次循环10个主题
		question = fmt.Sprintf("[주제 %d] %s", state.Turn%cbt2TopicCount+1, question)
	}
	messages = append(messages, llama.ChatMessage{Role: "user", Content: question})
	return messages
}

// appendHistory 将对话历史追加为消息列表
func appendHistory(messages []llama.ChatMessage, history []models.Message) []llama.ChatMessage {
	for _, msg := range history {
		role := msg.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, llama.ChatMessage{Role: role, Content: msg.Text})
	}
	return messages
}

// Registry 固定的阶段注册表，阶段集合在构建时封闭
type Registry struct {
	agents map[models.Stage]*StageAgent
}

// NewRegistry 创建阶段注册表，为每个阶段构建一个模型加载器
func NewRegistry(cfg *config.Config, client RuntimeClient) *Registry {
	stageConfigs := map[models.Stage]config.StageConfig{
		models.StageEmpathy: cfg.Stages.Empathy,
		models.StageMI:      cfg.Stages.MI,
		models.StageCBT1:    cfg.Stages.CBT1,
		models.StageCBT2:    cfg.Stages.CBT2,
		models.StageCBT3:    cfg.Stages.CBT3,
	}

	agents := make(map[models.Stage]*StageAgent, len(stageConfigs))
	for stage, stageCfg := range stageConfigs {
		agents[stage] = &StageAgent{
			Stage:        stage,
			Intro:        stageIntros[stage],
			Fallback:     stageFallbacks[stage],
			EmptyReply:   stageEmptyReplies[stage],
			MinInput:     stageMinInputs[stage],
			systemPrompt: stagePrompts[stage],
			loader:       NewStageLoader(stage, stageCfg, client),
		}
	}
	return &Registry{agents: agents}
}

// Resolve 按阶段名查找生成代理，未知阶段返回验证错误
func (r *Registry) Resolve(stage models.Stage) (*StageAgent, error) {
	agent, ok := r.agents[stage]
	if !ok {
		return nil, &models.ValidationError{Field: "stage", Message: "不支持的阶段: " + string(stage)}
	}
	return agent, nil
}

// LoadAll 并发加载所有阶段的模型，单个阶段失败不影响其他阶段
func (r *Registry) LoadAll(ctx context.Context, timeout time.Duration) {
	var wg sync.WaitGroup
	for _, stage := range models.Stages() {
		agent := r.agents[stage]
		wg.Add(1)
		go func() {
			defer wg.Done()
			loadCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			if err := agent.loader.Load(loadCtx); err != nil {
				log.Printf("阶段不可用: %v", err)
			}
		}()
	}
	wg.Wait()
}

// Status 返回各阶段的就绪状态
func (r *Registry) Status() map[string]bool {
	status := make(map[string]bool, len(r.agents))
	for stage, agent := range r.agents {
		status[string(stage)] = agent.loader.Ready()
	}
	return status
}

// Statuses 返回各阶段的加载状态快照，按咨询流程顺序排列
func (r *Registry) Statuses() []types.StageStatus {
	statuses := make([]types.StageStatus, 0, len(r.agents))
	for _, stage := range models.Stages() {
		statuses = append(statuses, r.agents[stage].loader.Status())
	}
	return statuses
}
